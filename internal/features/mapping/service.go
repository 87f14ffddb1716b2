package mapping

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"brevo-connector/internal/brevo"
	"brevo-connector/internal/common/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const mappingSheet = "Field Mappings"

// AttributeSource lists the contact attributes known remotely. The
// Brevo client implements it; discovery merges its answer with the
// builtin catalog.
type AttributeSource interface {
	FetchAttributes(ctx context.Context) ([]brevo.Attribute, error)
}

// ImportSummary reports what an xlsx import changed.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type MappingService interface {
	CreateMapping(ctx context.Context, mapping *FieldMapping) error
	GetMapping(ctx context.Context, id string) (*FieldMapping, error)
	ListMappings(ctx context.Context) ([]FieldMapping, error)
	ListActive(ctx context.Context) ([]FieldMapping, error)
	UpdateMapping(ctx context.Context, id string, updates map[string]interface{}) error
	DeactivateMapping(ctx context.Context, id string) error
	SeedPredefined(ctx context.Context) (int, error)
	DiscoverAttributes(ctx context.Context) (int, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
	ImportXLSX(ctx context.Context, file io.Reader) (*ImportSummary, error)
}

type MappingServiceImpl struct {
	Repo       FieldMappingRepository
	Attributes AttributeSource
	Logger     *zap.Logger
}

func NewMappingService(repo FieldMappingRepository, attributes AttributeSource, logger *zap.Logger) MappingService {
	return &MappingServiceImpl{
		Repo:       repo,
		Attributes: attributes,
		Logger:     logger,
	}
}

func (s *MappingServiceImpl) CreateMapping(ctx context.Context, mapping *FieldMapping) error {
	mapping.BrevoAttribute = strings.TrimSpace(mapping.BrevoAttribute)
	mapping.LocalField = strings.TrimSpace(mapping.LocalField)
	if mapping.BrevoAttribute == "" || mapping.LocalField == "" {
		return fmt.Errorf("brevo_attribute and local_field are required")
	}
	if mapping.FieldType == "" {
		mapping.FieldType = models.FieldTypeText
	}
	if mapping.Direction == "" {
		mapping.Direction = models.DirectionBoth
	}

	existing, err := s.Repo.FindPair(ctx, mapping.BrevoAttribute, mapping.LocalField)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("mapping %s -> %s already exists", mapping.BrevoAttribute, mapping.LocalField)
	}

	return s.Repo.Create(ctx, mapping)
}

func (s *MappingServiceImpl) GetMapping(ctx context.Context, id string) (*FieldMapping, error) {
	return s.Repo.Get(ctx, id)
}

func (s *MappingServiceImpl) ListMappings(ctx context.Context) ([]FieldMapping, error) {
	return s.Repo.List(ctx)
}

func (s *MappingServiceImpl) ListActive(ctx context.Context) ([]FieldMapping, error) {
	return s.Repo.ListActive(ctx)
}

func (s *MappingServiceImpl) UpdateMapping(ctx context.Context, id string, updates map[string]interface{}) error {
	return s.Repo.Update(ctx, id, updates)
}

// DeactivateMapping turns a mapping off instead of deleting it, so the
// attribute pairing stays visible.
func (s *MappingServiceImpl) DeactivateMapping(ctx context.Context, id string) error {
	return s.Repo.Update(ctx, id, map[string]interface{}{"active": false})
}

// SeedPredefined creates the builtin attribute pairings. Pairs that
// already exist are left untouched, so re-running is safe.
func (s *MappingServiceImpl) SeedPredefined(ctx context.Context) (int, error) {
	created := 0
	for attribute, def := range predefinedMappings {
		existing, err := s.Repo.FindPair(ctx, attribute, def.LocalField)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		mapping := &FieldMapping{
			BrevoAttribute: attribute,
			LocalField:     def.LocalField,
			FieldType:      def.FieldType,
			Direction:      models.DirectionBoth,
			Active:         true,
			Predefined:     true,
		}
		if err := s.Repo.Create(ctx, mapping); err != nil {
			return created, err
		}
		created++
	}

	s.Logger.Info("seeded predefined field mappings", zap.Int("created", created))
	return created, nil
}

// DiscoverAttributes pulls the attribute catalog from the remote
// account, merges it with the builtin one, and creates mapping rows for
// attributes that have none yet. Discovered rows without a predefined
// pairing start inactive so operators confirm them before they sync.
func (s *MappingServiceImpl) DiscoverAttributes(ctx context.Context) (int, error) {
	catalog := brevo.KnownAttributes()
	if s.Attributes != nil {
		remote, err := s.Attributes.FetchAttributes(ctx)
		if err != nil {
			s.Logger.Warn("could not fetch remote attributes, using builtin catalog", zap.Error(err))
		} else {
			seen := make(map[string]bool, len(catalog))
			for _, a := range catalog {
				seen[a.Name] = true
			}
			for _, a := range remote {
				if !seen[a.Name] {
					catalog = append(catalog, a)
				}
			}
		}
	}

	created := 0
	for _, attr := range catalog {
		local := localFieldName(attr.Name)
		fieldType := fieldTypeForRemote(attr.Type)
		active := false

		if def, ok := predefinedMappings[attr.Name]; ok {
			local = def.LocalField
			fieldType = def.FieldType
			active = true
		}

		existing, err := s.Repo.FindPair(ctx, attr.Name, local)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		mapping := &FieldMapping{
			BrevoAttribute: attr.Name,
			LocalField:     local,
			FieldType:      fieldType,
			Direction:      models.DirectionBoth,
			Active:         active,
		}
		if err := s.Repo.Create(ctx, mapping); err != nil {
			return created, err
		}
		created++
	}

	s.Logger.Info("attribute discovery finished", zap.Int("created", created))
	return created, nil
}

// ExportXLSX renders the mapping table as a spreadsheet for operators.
func (s *MappingServiceImpl) ExportXLSX(ctx context.Context) ([]byte, error) {
	mappings, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(mappingSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Brevo Attribute", "Local Field", "Type", "Direction", "Active"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(mappingSheet, cell, h)
	}

	for row, m := range mappings {
		values := []interface{}{m.BrevoAttribute, m.LocalField, string(m.FieldType), string(m.Direction), m.Active}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(mappingSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportXLSX upserts mappings from a spreadsheet in the export layout.
// Rows with an unknown type or missing names are skipped.
func (s *MappingServiceImpl) ImportXLSX(ctx context.Context, file io.Reader) (*ImportSummary, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in spreadsheet")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return &ImportSummary{}, nil
	}

	summary := &ImportSummary{}
	for _, row := range rows[1:] {
		if len(row) < 2 {
			summary.Skipped++
			continue
		}

		attribute := strings.TrimSpace(row[0])
		local := strings.TrimSpace(row[1])
		if attribute == "" || local == "" {
			summary.Skipped++
			continue
		}

		fieldType := models.FieldTypeText
		if len(row) > 2 && row[2] != "" {
			fieldType = models.FieldType(strings.ToLower(strings.TrimSpace(row[2])))
		}
		direction := models.DirectionBoth
		if len(row) > 3 && row[3] != "" {
			direction = models.Direction(strings.ToLower(strings.TrimSpace(row[3])))
		}
		active := true
		if len(row) > 4 {
			active = strings.EqualFold(strings.TrimSpace(row[4]), "true") || strings.TrimSpace(row[4]) == "1"
		}

		existing, err := s.Repo.FindPair(ctx, attribute, local)
		if err != nil {
			return summary, err
		}

		if existing != nil {
			err = s.Repo.Update(ctx, existing.ID.Hex(), map[string]interface{}{
				"field_type": fieldType,
				"direction":  direction,
				"active":     active,
			})
			if err != nil {
				return summary, err
			}
			summary.Updated++
			continue
		}

		mapping := &FieldMapping{
			BrevoAttribute: attribute,
			LocalField:     local,
			FieldType:      fieldType,
			Direction:      direction,
			Active:         active,
		}
		if err := s.Repo.Create(ctx, mapping); err != nil {
			return summary, err
		}
		summary.Created++
	}

	s.Logger.Info("imported field mappings",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}
