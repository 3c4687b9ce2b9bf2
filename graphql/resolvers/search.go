package resolvers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	entity "qcube.GO/model/entity"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService queries the SKU index. The client stays nil when
// Elasticsearch is not configured; callers fall back to in-memory search.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "qcube_skus"
	}
	if host == "" {
		return &SearchService{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}
	return &SearchService{client: client, index: index}
}

// Enabled reports whether an Elasticsearch client is configured.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// Search returns the SKU codes matching the query, best match first.
func (s *SearchService) Search(ctx context.Context, query string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}

	body := map[string]interface{}{
		"size": 50,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"nombre^3", "sku^2", "categoria", "ubicacion"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	var codes []string
	for _, hit := range esResp.Hits.Hits {
		if code, ok := hit.Source["sku"].(string); ok {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// IndexSKUs writes the current SKU collection into the index, one document
// per SKU keyed by its code. Used by the essync cron job.
func (s *SearchService) IndexSKUs(ctx context.Context, skus []entity.SKU) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	for _, sku := range skus {
		doc, err := json.Marshal(sku)
		if err != nil {
			return err
		}
		res, err := s.client.Index(
			s.index,
			bytes.NewReader(doc),
			s.client.Index.WithDocumentID(sku.SKU),
			s.client.Index.WithContext(ctx),
		)
		if err != nil {
			return err
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("elasticsearch index %s: %s", sku.SKU, res.String())
		}
	}
	return nil
}
