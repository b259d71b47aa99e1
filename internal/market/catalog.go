package market

import (
	"errors"
	"sync"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/google/uuid"
)

// TemplateCatalog holds the deployable application templates. The engine only
// reads it for compatibility checks; the CRUD surface exists for the external
// catalog management layer.
type TemplateCatalog struct {
	mu        sync.RWMutex
	templates map[string]*models.ApplicationTemplate
	store     *Store
}

func NewTemplateCatalog(store *Store) (*TemplateCatalog, error) {
	c := &TemplateCatalog{
		templates: make(map[string]*models.ApplicationTemplate),
		store:     store,
	}
	persisted, err := store.ListTemplates()
	if err != nil {
		return nil, err
	}
	for _, tpl := range persisted {
		c.templates[tpl.Id] = tpl
	}
	return c, nil
}

func validateTemplateReq(req *models.AddTemplateReq) error {
	if req.MinCpuCores < 0 || req.MinRamGb < 0 || req.MinStorageGb < 0 {
		return errors.New("template requirements must be non-negative")
	}
	return nil
}

func (c *TemplateCatalog) Add(req *models.AddTemplateReq) (*models.ApplicationTemplate, error) {
	if err := validateTemplateReq(req); err != nil {
		return nil, err
	}
	template := &models.ApplicationTemplate{
		Id:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Version:      req.Version,
		MinCpuCores:  req.MinCpuCores,
		MinRamGb:     req.MinRamGb,
		MinStorageGb: req.MinStorageGb,
		RequiredGpu:  req.RequiredGpu,
		Ports:        req.Ports,
	}

	if err := c.store.PutTemplate(template); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.templates[template.Id] = template
	c.mu.Unlock()

	return template.Clone(), nil
}

func (c *TemplateCatalog) Update(id string, req *models.AddTemplateReq) (*models.ApplicationTemplate, error) {
	if err := validateTemplateReq(req); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	template, ok := c.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	template.Name = req.Name
	template.Description = req.Description
	template.Category = req.Category
	template.Version = req.Version
	template.MinCpuCores = req.MinCpuCores
	template.MinRamGb = req.MinRamGb
	template.MinStorageGb = req.MinStorageGb
	template.RequiredGpu = req.RequiredGpu
	template.Ports = req.Ports

	if err := c.store.PutTemplate(template); err != nil {
		return nil, err
	}
	return template.Clone(), nil
}

func (c *TemplateCatalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.templates[id]; !ok {
		return ErrTemplateNotFound
	}
	delete(c.templates, id)
	return c.store.DeleteTemplate(id)
}

func (c *TemplateCatalog) Get(id string) (*models.ApplicationTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	template, ok := c.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return template.Clone(), nil
}

func (c *TemplateCatalog) List() []*models.ApplicationTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	templates := make([]*models.ApplicationTemplate, 0, len(c.templates))
	for _, template := range c.templates {
		templates = append(templates, template.Clone())
	}
	return templates
}
