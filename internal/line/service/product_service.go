package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService struct {
	mu     sync.Mutex
	repo   *repository.ProductRepository
	hub    *sse.Hub
	logger *zap.Logger
}

func NewProductService(repo *repository.ProductRepository, hub *sse.Hub, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, hub: hub, logger: logger}
}

// TissueMachineInput partial tissue machine assignment
type TissueMachineInput struct {
	Unwind1 *string `json:"unwind1"`
	Unwind2 *string `json:"unwind2"`
}

// ProductSpecInput partial product geometry; nil fields are left unchanged.
type ProductSpecInput struct {
	Diameter      *float64            `json:"diameter"`
	SheetWidth    *float64            `json:"sheet_width"`
	PerfLength    *float64            `json:"perf_length"`
	TissueMachine *TissueMachineInput `json:"tissue_machine"`
}

type ProductInput struct {
	Name     *string           `json:"name"`
	Settings *ProductSpecInput `json:"settings"`
}

func (in *ProductSpecInput) applyTo(spec *entity.ProductSpec) {
	if in == nil {
		return
	}
	if in.Diameter != nil {
		spec.Diameter = *in.Diameter
	}
	if in.SheetWidth != nil {
		spec.SheetWidth = *in.SheetWidth
	}
	if in.PerfLength != nil {
		spec.PerfLength = *in.PerfLength
	}
	if tm := in.TissueMachine; tm != nil {
		if tm.Unwind1 != nil {
			spec.TissueMachine.Unwind1 = *tm.Unwind1
		}
		if tm.Unwind2 != nil {
			spec.TissueMachine.Unwind2 = *tm.Unwind2
		}
	}
}

func (in *ProductSpecInput) validate() error {
	if in == nil {
		return nil
	}
	for name, v := range map[string]*float64{"diameter": in.Diameter, "sheet_width": in.SheetWidth, "perf_length": in.PerfLength} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
		}
	}
	return nil
}

// mergeSpec overlays the set fields of src onto dst.
func mergeSpec(dst *entity.ProductSpec, src entity.ProductSpec) {
	if src.Diameter != 0 {
		dst.Diameter = src.Diameter
	}
	if src.SheetWidth != 0 {
		dst.SheetWidth = src.SheetWidth
	}
	if src.PerfLength != 0 {
		dst.PerfLength = src.PerfLength
	}
	if src.TissueMachine.Unwind1 != "" {
		dst.TissueMachine.Unwind1 = src.TissueMachine.Unwind1
	}
	if src.TissueMachine.Unwind2 != "" {
		dst.TissueMachine.Unwind2 = src.TissueMachine.Unwind2
	}
}

// FolderID derives a folder id from its display name: lower case with
// whitespace runs replaced by "-".
func FolderID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// ========== Folders ==========

func (s *ProductService) ListFolders(ctx context.Context) ([]entity.ProductFolder, error) {
	return s.repo.LoadFolders(ctx)
}

func (s *ProductService) AddFolder(ctx context.Context, name string) (*entity.ProductFolder, error) {
	name = strings.TrimSpace(name)
	id := FolderID(name)
	if id == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.repo.LoadFolders(ctx)
	if err != nil {
		return nil, err
	}
	if findFolder(folders, id) >= 0 {
		return nil, fmt.Errorf("%w: folder %s", ErrDuplicate, id)
	}

	folder := entity.ProductFolder{ID: id, Name: name, Products: []entity.Product{}}
	if defaults, ok := entity.ProductLineDefaults[id]; ok {
		folder.DefaultSettings = &defaults
	}
	folders = append(folders, folder)
	if err := s.save(ctx, folders); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (s *ProductService) DeleteFolder(ctx context.Context, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.repo.LoadFolders(ctx)
	if err != nil {
		return err
	}
	i := findFolder(folders, folderID)
	if i < 0 {
		return fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	if err := s.guardActive(ctx, folders[i].Products); err != nil {
		return err
	}
	folders = append(folders[:i], folders[i+1:]...)
	return s.save(ctx, folders)
}

// ========== Products ==========

// AddProduct creates a product from the base defaults, then the folder
// defaults, then the request.
func (s *ProductService) AddProduct(ctx context.Context, folderID string, input *ProductInput) (*entity.Product, error) {
	if input == nil || input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if err := input.Settings.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.repo.LoadFolders(ctx)
	if err != nil {
		return nil, err
	}
	fi := findFolder(folders, folderID)
	if fi < 0 {
		return nil, fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}

	spec := entity.DefaultProductSpec()
	if d := folders[fi].DefaultSettings; d != nil {
		mergeSpec(&spec, *d)
	}
	input.Settings.applyTo(&spec)

	product := entity.Product{
		ID:       folderID + "-" + uuid.New().String()[:8],
		Name:     strings.TrimSpace(*input.Name),
		Settings: spec,
	}
	folders[fi].Products = append(folders[fi].Products, product)
	if err := s.save(ctx, folders); err != nil {
		return nil, err
	}
	s.logger.Info("Product added", zap.String("folder_id", folderID), zap.String("product_id", product.ID))
	return &product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, folderID, productID string, input *ProductInput) (*entity.Product, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: empty update", ErrInvalidInput)
	}
	if err := input.Settings.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.repo.LoadFolders(ctx)
	if err != nil {
		return nil, err
	}
	fi, pi, err := findProduct(folders, folderID, productID)
	if err != nil {
		return nil, err
	}
	p := &folders[fi].Products[pi]
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
		}
		p.Name = name
	}
	input.Settings.applyTo(&p.Settings)
	if err := s.save(ctx, folders); err != nil {
		return nil, err
	}
	updated := *p
	return &updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, folderID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.repo.LoadFolders(ctx)
	if err != nil {
		return err
	}
	fi, pi, err := findProduct(folders, folderID, productID)
	if err != nil {
		return err
	}
	products := folders[fi].Products
	if err := s.guardActive(ctx, products[pi:pi+1]); err != nil {
		return err
	}
	folders[fi].Products = append(products[:pi], products[pi+1:]...)
	return s.save(ctx, folders)
}

// SetActive makes exactly one product active across all folders.
func (s *ProductService) SetActive(ctx context.Context, folderID, productID string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.repo.IsLocked(ctx)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrProductLocked
	}

	folders, err := s.repo.LoadFolders(ctx)
	if err != nil {
		return nil, err
	}
	fi, pi, err := findProduct(folders, folderID, productID)
	if err != nil {
		return nil, err
	}
	for i := range folders {
		for j := range folders[i].Products {
			folders[i].Products[j].IsActive = i == fi && j == pi
		}
	}
	if err := s.save(ctx, folders); err != nil {
		return nil, err
	}
	s.logger.Info("Active product changed", zap.String("folder_id", folderID), zap.String("product_id", productID))
	active := folders[fi].Products[pi]
	return &active, nil
}

// ActiveProduct returns the active product, or nil when none is selected.
func (s *ProductService) ActiveProduct(ctx context.Context) (*entity.Product, error) {
	folders, err := s.repo.LoadFolders(ctx)
	if err != nil {
		return nil, err
	}
	return activeProduct(folders), nil
}

func (s *ProductService) IsLocked(ctx context.Context) (bool, error) {
	return s.repo.IsLocked(ctx)
}

func (s *ProductService) SetLocked(ctx context.Context, locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SetLocked(ctx, locked); err != nil {
		return fmt.Errorf("save product lock: %w", err)
	}
	s.logger.Info("Product lock changed", zap.Bool("locked", locked))
	return nil
}

// guardActive refuses to remove the active product while the selection is locked.
func (s *ProductService) guardActive(ctx context.Context, products []entity.Product) error {
	if activeProduct([]entity.ProductFolder{{Products: products}}) == nil {
		return nil
	}
	locked, err := s.repo.IsLocked(ctx)
	if err != nil {
		return err
	}
	if locked {
		return ErrProductLocked
	}
	return nil
}

func (s *ProductService) save(ctx context.Context, folders []entity.ProductFolder) error {
	if err := s.repo.SaveFolders(ctx, folders); err != nil {
		return fmt.Errorf("save product settings: %w", err)
	}
	if s.hub != nil {
		s.hub.Publish(sse.EventProducts, folders)
	}
	return nil
}

func activeProduct(folders []entity.ProductFolder) *entity.Product {
	var active *entity.Product
	for i := range folders {
		for j := range folders[i].Products {
			if folders[i].Products[j].IsActive {
				p := folders[i].Products[j]
				active = &p
			}
		}
	}
	return active
}

func findFolder(folders []entity.ProductFolder, id string) int {
	for i, f := range folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func findProduct(folders []entity.ProductFolder, folderID, productID string) (int, int, error) {
	fi := findFolder(folders, folderID)
	if fi < 0 {
		return 0, 0, fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	for pi, p := range folders[fi].Products {
		if p.ID == productID {
			return fi, pi, nil
		}
	}
	return 0, 0, fmt.Errorf("product %s: %w", productID, ErrNotFound)
}
