package service

import (
	"context"
	"time"
)

// ReportService 为管理员报表聚合其它服务的数据。
type ReportService interface {
	Counts(ctx context.Context, from, to *time.Time) (*DashboardCounts, error)
	Statistics(ctx context.Context, start, end time.Time) ([]NewsArticleStatistic, error)
	AllNews(ctx context.Context) ([]NewsArticleResponse, error)
	AllCategories(ctx context.Context) ([]CategoryResponse, error)
	AllTags(ctx context.Context) ([]TagResponse, error)
	AllAccounts(ctx context.Context) ([]AccountResponse, error)
}

type reportService struct {
	news       NewsService
	accounts   AccountService
	categories CategoryService
	tags       TagService
}

// NewReportService 创建一个新的 ReportService 实例。
func NewReportService(news NewsService, accounts AccountService, categories CategoryService, tags TagService) ReportService {
	return &reportService{news: news, accounts: accounts, categories: categories, tags: tags}
}

// Counts 中账号、分类和标签总数不受日期范围影响。
func (s *reportService) Counts(ctx context.Context, from, to *time.Time) (*DashboardCounts, error) {
	newsCounts, err := s.news.Counts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := DashboardCounts{NewsCounts: *newsCounts}
	if out.TotalUsers, err = s.accounts.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalTags, err = s.tags.Count(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reportService) Statistics(ctx context.Context, start, end time.Time) ([]NewsArticleStatistic, error) {
	return s.news.StatisticsByDateRange(ctx, start, end)
}

func (s *reportService) AllNews(ctx context.Context) ([]NewsArticleResponse, error) {
	return s.news.ListAll(ctx)
}

func (s *reportService) AllCategories(ctx context.Context) ([]CategoryResponse, error) {
	return s.categories.List(ctx)
}

func (s *reportService) AllTags(ctx context.Context) ([]TagResponse, error) {
	return s.tags.List(ctx)
}

func (s *reportService) AllAccounts(ctx context.Context) ([]AccountResponse, error) {
	return s.accounts.List(ctx)
}
