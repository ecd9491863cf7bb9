package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentLibrary is a folder tree of notes and file references. The
// troubleshooting notes and the grade change library are both built on it.
type DocumentLibrary struct {
	mu     sync.Mutex
	repo   *repository.DocumentRepository
	types  []entity.DocType
	name   string
	logger *zap.Logger
}

func newDocumentLibrary(repo *repository.DocumentRepository, name string, types []entity.DocType, logger *zap.Logger) *DocumentLibrary {
	return &DocumentLibrary{repo: repo, name: name, types: types, logger: logger}
}

// DocItemInput creates or edits an item. Absent fields are left unchanged on
// update; Type cannot change.
type DocItemInput struct {
	Name      *string                 `json:"name"`
	Type      *entity.DocType         `json:"type"`
	Content   *string                 `json:"content"`
	URL       *string                 `json:"url"`
	Checklist *[]entity.ChecklistItem `json:"checklist"`
}

// DocMatch is one search hit.
type DocMatch struct {
	FolderID   string         `json:"folder_id"`
	FolderPath string         `json:"folder_path"`
	Item       entity.DocItem `json:"item"`
	// MatchType is "title", "content" or "both".
	MatchType string `json:"match_type"`
}

func (l *DocumentLibrary) Tree(ctx context.Context) ([]entity.DocFolder, error) {
	return l.repo.Load(ctx)
}

// Types lists the item types the library accepts.
func (l *DocumentLibrary) Types() []entity.DocType {
	return append([]entity.DocType(nil), l.types...)
}

// ========== Folders ==========

// CreateFolder adds a folder under parentID, or at the top level when
// parentID is empty.
func (l *DocumentLibrary) CreateFolder(ctx context.Context, parentID, name string) (*entity.DocFolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	folders, err := l.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	folder := entity.DocFolder{Name: name, Subfolders: []entity.DocFolder{}, Files: []entity.DocItem{}}
	if parentID == "" {
		folder.ID = "main-" + shortID()
		folders = append(folders, folder)
	} else {
		parent := findDocFolder(folders, parentID)
		if parent == nil {
			return nil, fmt.Errorf("folder %s: %w", parentID, ErrNotFound)
		}
		folder.ID = parent.ID + "-" + shortID()
		parent.Subfolders = append(parent.Subfolders, folder)
	}
	if err := l.save(ctx, folders); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder removes a folder with everything below it.
func (l *DocumentLibrary) DeleteFolder(ctx context.Context, folderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	folders, err := l.repo.Load(ctx)
	if err != nil {
		return err
	}
	folders, ok := removeDocFolder(folders, folderID)
	if !ok {
		return fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	return l.save(ctx, folders)
}

// ========== Items ==========

func (l *DocumentLibrary) AddItem(ctx context.Context, folderID string, input *DocItemInput) (*entity.DocItem, error) {
	if input == nil || input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	item := entity.DocItem{ID: "file-" + shortID(), Name: strings.TrimSpace(*input.Name), Type: entity.DocNote}
	if input.Type != nil {
		item.Type = *input.Type
	}
	if !l.accepts(item.Type) {
		return nil, fmt.Errorf("%w: %s does not hold %q items", ErrInvalidInput, l.name, item.Type)
	}
	if err := applyItemInput(&item, input); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	folders, err := l.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	folder := findDocFolder(folders, folderID)
	if folder == nil {
		return nil, fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	folder.Files = append(folder.Files, item)
	if err := l.save(ctx, folders); err != nil {
		return nil, err
	}
	return &item, nil
}

func (l *DocumentLibrary) UpdateItem(ctx context.Context, itemID string, input *DocItemInput) (*entity.DocItem, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: empty update", ErrInvalidInput)
	}
	return l.mutateItem(ctx, itemID, func(item *entity.DocItem) error {
		if input.Type != nil && *input.Type != item.Type {
			return fmt.Errorf("%w: item type cannot change", ErrInvalidInput)
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return fmt.Errorf("%w: item name is required", ErrInvalidInput)
			}
			item.Name = name
		}
		return applyItemInput(item, input)
	})
}

func (l *DocumentLibrary) DeleteItem(ctx context.Context, itemID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	folders, err := l.repo.Load(ctx)
	if err != nil {
		return err
	}
	if !removeDocItem(folders, itemID) {
		return fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	return l.save(ctx, folders)
}

// ========== Search ==========

// Search matches the whitespace separated terms of query against item names
// and contents; an item matches when any term does. folderID limits the
// search to that folder and its subfolders.
func (l *DocumentLibrary) Search(ctx context.Context, query, folderID string) ([]DocMatch, error) {
	folders, err := l.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	matches := []DocMatch{}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return matches, nil
	}

	roots := folders
	var prefix []string
	if folderID != "" {
		path := docFolderPath(folders, folderID)
		if path == nil {
			return nil, fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
		}
		roots = []entity.DocFolder{*findDocFolder(folders, folderID)}
		prefix = path[:len(path)-1]
	}

	var walk func(f entity.DocFolder, path []string)
	walk = func(f entity.DocFolder, path []string) {
		path = append(append([]string(nil), path...), f.Name)
		for _, item := range f.Files {
			title := anyTermIn(terms, item.Name)
			content := anyTermIn(terms, itemText(item))
			if !title && !content {
				continue
			}
			m := DocMatch{FolderID: f.ID, FolderPath: strings.Join(path, " / "), Item: item, MatchType: "content"}
			switch {
			case title && content:
				m.MatchType = "both"
			case title:
				m.MatchType = "title"
			}
			matches = append(matches, m)
		}
		for _, sub := range f.Subfolders {
			walk(sub, path)
		}
	}
	for _, f := range roots {
		walk(f, prefix)
	}
	return matches, nil
}

// FolderPath returns the folder names from the top of the tree down to
// folderID, joined by " / ".
func (l *DocumentLibrary) FolderPath(ctx context.Context, folderID string) (string, error) {
	folders, err := l.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	path := docFolderPath(folders, folderID)
	if path == nil {
		return "", fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	return strings.Join(path, " / "), nil
}

func (l *DocumentLibrary) accepts(t entity.DocType) bool {
	for _, ok := range l.types {
		if ok == t {
			return true
		}
	}
	return false
}

func (l *DocumentLibrary) mutateItem(ctx context.Context, itemID string, apply func(*entity.DocItem) error) (*entity.DocItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	folders, err := l.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	item := findDocItem(folders, itemID)
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	if err := apply(item); err != nil {
		return nil, fmt.Errorf("item %s: %w", itemID, err)
	}
	if err := l.save(ctx, folders); err != nil {
		return nil, err
	}
	out := *item
	return &out, nil
}

func (l *DocumentLibrary) save(ctx context.Context, folders []entity.DocFolder) error {
	if err := l.repo.Save(ctx, folders); err != nil {
		return fmt.Errorf("save %s: %w", l.name, err)
	}
	return nil
}

func applyItemInput(item *entity.DocItem, input *DocItemInput) error {
	if input.Checklist != nil {
		if item.Type != entity.DocChecklist {
			return fmt.Errorf("%w: only checklist items carry a checklist", ErrInvalidInput)
		}
		list := make([]entity.ChecklistItem, 0, len(*input.Checklist))
		for _, c := range *input.Checklist {
			c.Task = strings.TrimSpace(c.Task)
			c.Value = strings.TrimSpace(c.Value)
			list = append(list, c)
		}
		item.Checklist = list
	}
	if input.Content != nil {
		if item.Type == entity.DocChecklist {
			return fmt.Errorf("%w: checklist items have no free text content", ErrInvalidInput)
		}
		item.Content = *input.Content
	}
	if input.URL != nil {
		item.URL = strings.TrimSpace(*input.URL)
	}
	return nil
}

// itemText is the searchable content of an item.
func itemText(item entity.DocItem) string {
	if item.Type != entity.DocChecklist {
		return item.Content
	}
	var b strings.Builder
	for _, c := range item.Checklist {
		b.WriteString(c.Task)
		b.WriteByte(' ')
		b.WriteString(c.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

func anyTermIn(terms []string, text string) bool {
	if text == "" {
		return false
	}
	text = strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func shortID() string {
	return uuid.New().String()[:8]
}

// ========== Tree helpers ==========

// findDocFolder returns a pointer into folders, valid until the tree is
// modified.
func findDocFolder(folders []entity.DocFolder, id string) *entity.DocFolder {
	for i := range folders {
		if folders[i].ID == id {
			return &folders[i]
		}
		if f := findDocFolder(folders[i].Subfolders, id); f != nil {
			return f
		}
	}
	return nil
}

func docFolderPath(folders []entity.DocFolder, id string) []string {
	for _, f := range folders {
		if f.ID == id {
			return []string{f.Name}
		}
		if sub := docFolderPath(f.Subfolders, id); sub != nil {
			return append([]string{f.Name}, sub...)
		}
	}
	return nil
}

func removeDocFolder(folders []entity.DocFolder, id string) ([]entity.DocFolder, bool) {
	for i := range folders {
		if folders[i].ID == id {
			return append(folders[:i], folders[i+1:]...), true
		}
		if subs, ok := removeDocFolder(folders[i].Subfolders, id); ok {
			folders[i].Subfolders = subs
			return folders, true
		}
	}
	return folders, false
}

func findDocItem(folders []entity.DocFolder, id string) *entity.DocItem {
	for i := range folders {
		for j := range folders[i].Files {
			if folders[i].Files[j].ID == id {
				return &folders[i].Files[j]
			}
		}
		if item := findDocItem(folders[i].Subfolders, id); item != nil {
			return item
		}
	}
	return nil
}

func removeDocItem(folders []entity.DocFolder, id string) bool {
	for i := range folders {
		for j := range folders[i].Files {
			if folders[i].Files[j].ID == id {
				folders[i].Files = append(folders[i].Files[:j], folders[i].Files[j+1:]...)
				return true
			}
		}
		if removeDocItem(folders[i].Subfolders, id) {
			return true
		}
	}
	return false
}
