// Package es 提供了与 Elasticsearch 交互的客户端功能。
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fu-news-go/internal/config"
	"fu-news-go/internal/model"
	"fu-news-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// articleMapping 是文章索引的结构。标题、摘要和正文使用标准分词器。
const articleMapping = `{
	"mappings": {
		"properties": {
			"news_article_id": { "type": "long" },
			"news_title":      { "type": "text" },
			"headline":        { "type": "text" },
			"news_content":    { "type": "text" },
			"category_id":     { "type": "long" },
			"category_name":   { "type": "keyword" },
			"created_by_name": { "type": "keyword" },
			"tags":            { "type": "keyword" },
			"news_status":     { "type": "boolean" },
			"created_date":    { "type": "date", "format": "strict_date_hour_minute_second" }
		}
	}
}`

// ArticleIndex 封装了一个 Elasticsearch 客户端和目标索引名。
type ArticleIndex struct {
	client *elasticsearch.Client
	name   string
}

// ArticleHit 是全文检索的一条结果。
type ArticleHit struct {
	Document model.ArticleDocument
	Score    float64
}

// NewClient 根据配置创建 Elasticsearch 客户端。
func NewClient(esCfg config.ElasticsearchConfig) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: strings.Split(esCfg.Addresses, ","),
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	return elasticsearch.NewClient(cfg)
}

// NewArticleIndex 创建一个 ArticleIndex。
func NewArticleIndex(client *elasticsearch.Client, indexName string) *ArticleIndex {
	return &ArticleIndex{client: client, name: indexName}
}

// EnsureIndex 检查索引是否存在，如果不存在则创建它。
func (i *ArticleIndex) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.name}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		log.Errorf("检查索引是否存在时出错: %v", err)
		return err
	}
	res.Body.Close()
	// 如果 res.StatusCode 是 200，说明索引已存在
	if res.StatusCode == http.StatusOK {
		log.Infof("索引 '%s' 已存在", i.name)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("检查索引是否存在时收到意外的状态码: %d", res.StatusCode)
	}

	res, err = i.client.Indices.Create(
		i.name,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(strings.NewReader(articleMapping)),
	)
	if err != nil {
		log.Errorf("创建索引 '%s' 失败: %v", i.name, err)
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Errorf("创建索引 '%s' 时 Elasticsearch 返回错误: %s", i.name, res.String())
		return errors.New("创建索引时 Elasticsearch 返回错误")
	}

	log.Infof("索引 '%s' 创建成功", i.name)
	return nil
}

// IndexArticle 写入或覆盖一篇文章的索引文档，文档 ID 即文章 ID。
func (i *ArticleIndex) IndexArticle(ctx context.Context, doc model.ArticleDocument) error {
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      i.name,
		DocumentID: strconv.FormatUint(uint64(doc.NewsArticleID), 10),
		Body:       bytes.NewReader(docBytes),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("索引文档到 Elasticsearch 出错: %s", res.String())
		return errors.New("failed to index document")
	}
	return nil
}

// DeleteArticle 从索引中移除文章，文档不存在视为成功。
func (i *ArticleIndex) DeleteArticle(ctx context.Context, articleID uint) error {
	req := esapi.DeleteRequest{
		Index:      i.name,
		DocumentID: strconv.FormatUint(uint64(articleID), 10),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		log.Errorf("从 Elasticsearch 删除文档出错: %s", res.String())
		return errors.New("failed to delete document")
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64               `json:"_score"`
			Source model.ArticleDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchArticles 在已发布文章中进行全文检索，标题权重加倍。
func (i *ArticleIndex) SearchArticles(ctx context.Context, query string, size int) ([]ArticleHit, error) {
	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"news_title^2", "headline", "news_content"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"news_status": true},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.name),
		i.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Errorf("Elasticsearch 检索出错: %s", res.String())
		return nil, errors.New("failed to search documents")
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	hits := make([]ArticleHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, ArticleHit{Document: h.Source, Score: h.Score})
	}
	return hits, nil
}
