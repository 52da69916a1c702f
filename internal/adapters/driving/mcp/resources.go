package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for docforge resources.
const uriScheme = "docforge://"

// recentDocumentsLimit caps the recent-documents resource.
const recentDocumentsLimit = 50

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for recently imported documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Recently imported documents, newest first",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's heading skeleton.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/sections",
		Name:        "document-sections",
		Description: "Heading skeleton of a specific document",
		MIMEType:    "application/json",
	}, s.handleSectionsResource)
}

// handleDocumentsResource returns the recently imported documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	records, err := s.ports.Store.RecentDocuments(ctx, recentDocumentsLimit)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		SourcePath      string `json:"source_path"`
		SourceType      string `json:"source_type"`
		ChunkCount      int    `json:"chunk_count"`
		LowQualityPages []int  `json:"low_quality_pages,omitempty"`
	}

	infos := make([]docInfo, len(records))
	for i, record := range records {
		infos[i] = docInfo{
			ID:              record.ID,
			Title:           record.Title,
			SourcePath:      record.SourcePath,
			SourceType:      string(record.SourceType),
			ChunkCount:      record.ChunkCount,
			LowQualityPages: record.LowQualityPages,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSectionsResource returns the heading skeleton of a document.
func (s *Server) handleSectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sections, err := s.ports.Store.Sections(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting sections: %w", err)
	}

	type sectionInfo struct {
		Level             int    `json:"level"`
		Title             string `json:"title"`
		ChunkStartOrdinal int    `json:"chunk_start_ordinal"`
	}

	infos := make([]sectionInfo, len(sections))
	for i, section := range sections {
		infos[i] = sectionInfo{
			Level:             section.Level,
			Title:             section.Title,
			ChunkStartOrdinal: section.ChunkStartOrdinal,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sections: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like
// docforge://documents/{documentId}/sections.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"
	const suffix = "/sections"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
