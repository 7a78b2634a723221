package repositorytest

import (
	"context"
	"sort"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"

	"gorm.io/gorm"
)

type articleRepo struct{ s *Store }

// stripAssociations 去掉关联字段，只保留文章自身列，等价于 Omit(clause.Associations)。
func stripAssociations(a model.NewsArticle) model.NewsArticle {
	a.Category = model.Category{}
	a.CreatedBy = model.Account{}
	a.UpdatedBy = nil
	a.Tags = nil
	return a
}

func (r articleRepo) Create(_ context.Context, article *model.NewsArticle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.Create"); err != nil {
		return err
	}
	// 模拟外键约束
	if _, ok := r.s.st.categories[article.CategoryID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	article.ID = r.s.st.nextArticleID
	r.s.st.nextArticleID++
	r.s.st.articles[article.ID] = stripAssociations(*article)
	return nil
}

func (r articleRepo) Update(_ context.Context, article *model.NewsArticle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.Update"); err != nil {
		return err
	}
	if _, ok := r.s.st.categories[article.CategoryID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	r.s.st.articles[article.ID] = stripAssociations(*article)
	return nil
}

func (r articleRepo) ReplaceTags(_ context.Context, article *model.NewsArticle, tags []model.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.ReplaceTags"); err != nil {
		return err
	}
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	r.s.st.articleTags[article.ID] = ids
	article.Tags = tags
	return nil
}

func (r articleRepo) FindByID(_ context.Context, articleID uint) (*model.NewsArticle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.FindByID"); err != nil {
		return nil, err
	}
	a, ok := r.s.st.articles[articleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

// withDetails 模拟预加载，调用方需持有锁。
func (r articleRepo) withDetails(a model.NewsArticle) model.NewsArticle {
	if c, ok := r.s.st.categories[a.CategoryID]; ok {
		a.Category = c
	}
	if acc, ok := r.s.st.accounts[a.CreatedByID]; ok {
		a.CreatedBy = acc
	}
	if a.UpdatedByID != nil {
		if acc, ok := r.s.st.accounts[*a.UpdatedByID]; ok {
			a.UpdatedBy = &acc
		}
	}
	a.Tags = []model.Tag{}
	for _, id := range r.s.st.articleTags[a.ID] {
		if t, ok := r.s.st.tags[id]; ok {
			a.Tags = append(a.Tags, t)
		}
	}
	return a
}

func (r articleRepo) FindByIDWithDetails(_ context.Context, articleID uint) (*model.NewsArticle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.FindByIDWithDetails"); err != nil {
		return nil, err
	}
	a, ok := r.s.st.articles[articleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a = r.withDetails(a)
	return &a, nil
}

func matches(a model.NewsArticle, q repository.ArticleQuery) bool {
	if q.Status != nil && a.Status != *q.Status {
		return false
	}
	if q.CreatedByID != nil && a.CreatedByID != *q.CreatedByID {
		return false
	}
	if q.Term != "" && !containsFold(a.Title, q.Term) && !containsFold(deref(a.Headline), q.Term) && !containsFold(a.Content, q.Term) {
		return false
	}
	if q.From != nil && a.CreatedDate.Before(*q.From) {
		return false
	}
	if q.To != nil && a.CreatedDate.After(*q.To) {
		return false
	}
	return true
}

// filter 返回满足条件的文章，调用方需持有锁。
func (r articleRepo) filter(q repository.ArticleQuery) []model.NewsArticle {
	out := []model.NewsArticle{}
	for _, id := range sortedKeys(r.s.st.articles) {
		if a := r.s.st.articles[id]; matches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func (r articleRepo) Find(_ context.Context, q repository.ArticleQuery) ([]model.NewsArticle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.Find"); err != nil {
		return nil, err
	}
	out := r.filter(q)
	for i := range out {
		out[i] = r.withDetails(out[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedDate.After(out[j].CreatedDate) })
	return out, nil
}

func (r articleRepo) Count(_ context.Context, q repository.ArticleQuery) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.Count"); err != nil {
		return 0, err
	}
	return int64(len(r.filter(q))), nil
}

func (r articleRepo) CountDistinctAuthors(_ context.Context, q repository.ArticleQuery) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.CountDistinctAuthors"); err != nil {
		return 0, err
	}
	authors := map[uint]struct{}{}
	for _, a := range r.filter(q) {
		authors[a.CreatedByID] = struct{}{}
	}
	return int64(len(authors)), nil
}

func (r articleRepo) ExistsByCategory(_ context.Context, categoryID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.ExistsByCategory"); err != nil {
		return false, err
	}
	for _, a := range r.s.st.articles {
		if a.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r articleRepo) ExistsByCreator(_ context.Context, accountID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.ExistsByCreator"); err != nil {
		return false, err
	}
	for _, a := range r.s.st.articles {
		if a.CreatedByID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (r articleRepo) ClearUpdater(_ context.Context, accountID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("NewsArticles.ClearUpdater"); err != nil {
		return err
	}
	for id, a := range r.s.st.articles {
		if a.UpdatedByID != nil && *a.UpdatedByID == accountID {
			a.UpdatedByID = nil
			r.s.st.articles[id] = a
		}
	}
	return nil
}
