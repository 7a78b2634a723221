// Package repositorytest 提供了 repository.UnitOfWork 的内存实现，供 service 与 handler 测试使用。
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"

	"gorm.io/gorm"
)

type state struct {
	accounts    map[uint]model.Account
	categories  map[uint]model.Category
	tags        map[uint]model.Tag
	articles    map[uint]model.NewsArticle
	articleTags map[uint][]uint

	nextAccountID  uint
	nextCategoryID uint
	nextTagID      uint
	nextArticleID  uint
}

func newState() *state {
	return &state{
		accounts:       map[uint]model.Account{},
		categories:     map[uint]model.Category{},
		tags:           map[uint]model.Tag{},
		articles:       map[uint]model.NewsArticle{},
		articleTags:    map[uint][]uint{},
		nextAccountID:  1,
		nextCategoryID: 1,
		nextTagID:      1,
		nextArticleID:  1,
	}
}

func (s *state) clone() *state {
	c := *s
	c.accounts = make(map[uint]model.Account, len(s.accounts))
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.categories = make(map[uint]model.Category, len(s.categories))
	for k, v := range s.categories {
		c.categories[k] = v
	}
	c.tags = make(map[uint]model.Tag, len(s.tags))
	for k, v := range s.tags {
		c.tags[k] = v
	}
	c.articles = make(map[uint]model.NewsArticle, len(s.articles))
	for k, v := range s.articles {
		c.articles[k] = v
	}
	c.articleTags = make(map[uint][]uint, len(s.articleTags))
	for k, v := range s.articleTags {
		c.articleTags[k] = append([]uint(nil), v...)
	}
	return &c
}

// Store 是一个线程安全的内存 UnitOfWork。
// Transaction 在回调返回错误时恢复到回调开始前的快照。
type Store struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
}

var _ repository.UnitOfWork = (*Store)(nil)

// NewStore 创建一个空的内存 Store。
func NewStore() *Store {
	return &Store{st: newState(), failures: map[string]error{}}
}

// Fail 让名为 op 的操作（例如 "NewsArticles.ReplaceTags"）返回 err，err 为 nil 时取消注入。
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	return s.failures[op]
}

func (s *Store) Accounts() repository.AccountRepository         { return accountRepo{s} }
func (s *Store) Categories() repository.CategoryRepository      { return categoryRepo{s} }
func (s *Store) Tags() repository.TagRepository                 { return tagRepo{s} }
func (s *Store) NewsArticles() repository.NewsArticleRepository { return articleRepo{s} }

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.UnitOfWork) error) error {
	s.mu.Lock()
	if err := s.failure("Transaction"); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func containsFold(field, term string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(term))
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ---- accounts ----

type accountRepo struct{ s *Store }

func (r accountRepo) Create(_ context.Context, account *model.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Accounts.Create"); err != nil {
		return err
	}
	for _, a := range r.s.st.accounts {
		if a.Email == account.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	account.ID = r.s.st.nextAccountID
	r.s.st.nextAccountID++
	r.s.st.accounts[account.ID] = *account
	return nil
}

func (r accountRepo) Update(_ context.Context, account *model.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Accounts.Update"); err != nil {
		return err
	}
	r.s.st.accounts[account.ID] = *account
	return nil
}

func (r accountRepo) Delete(_ context.Context, accountID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Accounts.Delete"); err != nil {
		return err
	}
	delete(r.s.st.accounts, accountID)
	return nil
}

func (r accountRepo) FindByID(_ context.Context, accountID uint) (*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Accounts.FindByID"); err != nil {
		return nil, err
	}
	a, ok := r.s.st.accounts[accountID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r accountRepo) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Accounts.FindByEmail"); err != nil {
		return nil, err
	}
	for _, id := range sortedKeys(r.s.st.accounts) {
		if a := r.s.st.accounts[id]; a.Email == email {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r accountRepo) FindAll(ctx context.Context) ([]model.Account, error) {
	return r.Search(ctx, "")
}

func (r accountRepo) Search(_ context.Context, term string) ([]model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Accounts.Search"); err != nil {
		return nil, err
	}
	out := []model.Account{}
	for _, id := range sortedKeys(r.s.st.accounts) {
		a := r.s.st.accounts[id]
		if term == "" || containsFold(deref(a.Name), term) || containsFold(a.Email, term) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r accountRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Accounts.Count"); err != nil {
		return 0, err
	}
	return int64(len(r.s.st.accounts)), nil
}

// ---- categories ----

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Categories.Create"); err != nil {
		return err
	}
	category.ID = r.s.st.nextCategoryID
	r.s.st.nextCategoryID++
	stored := *category
	stored.Parent = nil
	r.s.st.categories[category.ID] = stored
	return nil
}

func (r categoryRepo) Update(_ context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Categories.Update"); err != nil {
		return err
	}
	stored := *category
	stored.Parent = nil
	r.s.st.categories[category.ID] = stored
	return nil
}

func (r categoryRepo) Delete(_ context.Context, categoryID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Categories.Delete"); err != nil {
		return err
	}
	delete(r.s.st.categories, categoryID)
	return nil
}

// withParent 模拟 Preload("Parent")，调用方需持有锁。
func (r categoryRepo) withParent(c model.Category) model.Category {
	if c.ParentID != nil {
		if p, ok := r.s.st.categories[*c.ParentID]; ok {
			c.Parent = &p
		}
	}
	return c
}

func (r categoryRepo) FindByID(_ context.Context, categoryID uint) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Categories.FindByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.st.categories[categoryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c = r.withParent(c)
	return &c, nil
}

func (r categoryRepo) list(op string, keep func(model.Category) bool) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(op); err != nil {
		return nil, err
	}
	out := []model.Category{}
	for _, id := range sortedKeys(r.s.st.categories) {
		c := r.s.st.categories[id]
		if keep(c) {
			out = append(out, r.withParent(c))
		}
	}
	return out, nil
}

func (r categoryRepo) FindAll(_ context.Context) ([]model.Category, error) {
	return r.list("Categories.FindAll", func(model.Category) bool { return true })
}

func (r categoryRepo) FindActive(_ context.Context) ([]model.Category, error) {
	return r.list("Categories.FindActive", func(c model.Category) bool { return c.IsActive })
}

func (r categoryRepo) Search(_ context.Context, term string) ([]model.Category, error) {
	return r.list("Categories.Search", func(c model.Category) bool {
		return term == "" || containsFold(c.Name, term) || containsFold(deref(c.Description), term)
	})
}

func (r categoryRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Categories.Count"); err != nil {
		return 0, err
	}
	return int64(len(r.s.st.categories)), nil
}

func (r categoryRepo) DetachChildren(_ context.Context, parentID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Categories.DetachChildren"); err != nil {
		return err
	}
	for id, c := range r.s.st.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			c.ParentID = nil
			r.s.st.categories[id] = c
		}
	}
	return nil
}

// ---- tags ----

type tagRepo struct{ s *Store }

func (r tagRepo) Create(_ context.Context, tag *model.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.Create"); err != nil {
		return err
	}
	for _, t := range r.s.st.tags {
		if t.Name == tag.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	tag.ID = r.s.st.nextTagID
	r.s.st.nextTagID++
	r.s.st.tags[tag.ID] = *tag
	return nil
}

func (r tagRepo) Update(_ context.Context, tag *model.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.Update"); err != nil {
		return err
	}
	for _, t := range r.s.st.tags {
		if t.Name == tag.Name && t.ID != tag.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.st.tags[tag.ID] = *tag
	return nil
}

func (r tagRepo) Delete(_ context.Context, tagID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.Delete"); err != nil {
		return err
	}
	delete(r.s.st.tags, tagID)
	for articleID, ids := range r.s.st.articleTags {
		kept := ids[:0]
		for _, id := range ids {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		r.s.st.articleTags[articleID] = kept
	}
	return nil
}

func (r tagRepo) FindByID(_ context.Context, tagID uint) (*model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.FindByID"); err != nil {
		return nil, err
	}
	t, ok := r.s.st.tags[tagID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r tagRepo) FindByName(_ context.Context, name string) (*model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.FindByName"); err != nil {
		return nil, err
	}
	for _, id := range sortedKeys(r.s.st.tags) {
		if t := r.s.st.tags[id]; t.Name == name {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r tagRepo) FindByIDs(_ context.Context, tagIDs []uint) ([]model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.FindByIDs"); err != nil {
		return nil, err
	}
	wanted := map[uint]bool{}
	for _, id := range tagIDs {
		wanted[id] = true
	}
	out := []model.Tag{}
	for _, id := range sortedKeys(r.s.st.tags) {
		if wanted[id] {
			out = append(out, r.s.st.tags[id])
		}
	}
	return out, nil
}

func (r tagRepo) FindAll(_ context.Context) ([]model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.FindAll"); err != nil {
		return nil, err
	}
	out := []model.Tag{}
	for _, id := range sortedKeys(r.s.st.tags) {
		out = append(out, r.s.st.tags[id])
	}
	return out, nil
}

func (r tagRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.Count"); err != nil {
		return 0, err
	}
	return int64(len(r.s.st.tags)), nil
}

func (r tagRepo) IsUsed(_ context.Context, tagID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Tags.IsUsed"); err != nil {
		return false, err
	}
	for _, ids := range r.s.st.articleTags {
		for _, id := range ids {
			if id == tagID {
				return true, nil
			}
		}
	}
	return false, nil
}
