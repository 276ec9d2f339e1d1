package generator

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"eventcli/internal/config"
	"eventcli/internal/errors"
	"eventcli/pkg/contracts/domain"
)

// EventSpec describes one event in the catalog
type EventSpec struct {
	Name   string             `yaml:"name" validate:"required"`
	Type   domain.EventType   `yaml:"type" validate:"oneof=Flagship Regional Virtual"`
	Format domain.EventFormat `yaml:"format" validate:"oneof=In-Person Hybrid Virtual"`
	Count  int                `yaml:"count" validate:"gte=1"`
	Date   string             `yaml:"date" validate:"required,datetime=2006-01-02"`
}

// EventDate parses Date; the catalog is validated before use
func (e EventSpec) EventDate() time.Time {
	d, _ := time.Parse(domain.DateLayout, e.Date)
	return d
}

// ChannelSpec describes one acquisition channel
type ChannelSpec struct {
	Name     string  `yaml:"name" validate:"required"`
	Share    float64 `yaml:"share" validate:"gt=0"`
	BaseRate float64 `yaml:"base_rate" validate:"gte=0,lte=1"`
	CostMin  float64 `yaml:"cost_min" validate:"gte=0"`
	CostMax  float64 `yaml:"cost_max" validate:"gtefield=CostMin"`
}

// Catalog is the closed vocabulary the generator samples from
type Catalog struct {
	Events       []EventSpec   `yaml:"events" validate:"required,min=1,dive"`
	Channels     []ChannelSpec `yaml:"channels" validate:"required,min=1,dive"`
	JobTitles    []string      `yaml:"job_titles" validate:"required,min=1,dive,required"`
	Industries   []string      `yaml:"industries" validate:"required,min=1,dive,required"`
	CompanySizes []string      `yaml:"company_sizes" validate:"required,min=1,dive,required"`
}

// TotalRegistrations is the sum of event target counts
func (c *Catalog) TotalRegistrations() int {
	total := 0
	for _, e := range c.Events {
		total += e.Count
	}
	return total
}

// Validate checks the catalog's struct tags and name uniqueness
func (c *Catalog) Validate() error {
	if err := config.Validator().Struct(c); err != nil {
		return errors.NewAppError(errors.ErrTypeValidation, "invalid catalog", err)
	}

	seen := make(map[string]bool, len(c.Events))
	for _, e := range c.Events {
		if seen[e.Name] {
			return errors.NewAppValidationError(fmt.Sprintf("duplicate event %q", e.Name))
		}
		seen[e.Name] = true
	}
	seen = make(map[string]bool, len(c.Channels))
	for _, ch := range c.Channels {
		if seen[ch.Name] {
			return errors.NewAppValidationError(fmt.Sprintf("duplicate channel %q", ch.Name))
		}
		seen[ch.Name] = true
	}
	return nil
}

// LoadCatalog reads a YAML catalog. An empty path yields DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("read catalog", err).WithContext("path", path)
	}

	var c Catalog
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, errors.NewConfigError("parse catalog", err).WithContext("path", path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultCatalog returns the built-in six events and six channels
func DefaultCatalog() *Catalog {
	return &Catalog{
		Events: []EventSpec{
			{Name: "Tech Summit 2024", Type: domain.EventTypeFlagship, Format: domain.EventFormatInPerson, Count: 620, Date: "2024-03-15"},
			{Name: "Developer Conference 2024", Type: domain.EventTypeFlagship, Format: domain.EventFormatInPerson, Count: 510, Date: "2024-06-10"},
			{Name: "AI Innovation Tour", Type: domain.EventTypeRegional, Format: domain.EventFormatHybrid, Count: 380, Date: "2024-09-05"},
			{Name: "Cloud Workshop Series", Type: domain.EventTypeVirtual, Format: domain.EventFormatVirtual, Count: 310, Date: "2024-04-20"},
			{Name: "Industry Roadshow - East", Type: domain.EventTypeRegional, Format: domain.EventFormatInPerson, Count: 190, Date: "2024-07-18"},
			{Name: "Industry Roadshow - West", Type: domain.EventTypeRegional, Format: domain.EventFormatInPerson, Count: 170, Date: "2024-10-12"},
		},
		Channels: []ChannelSpec{
			{Name: "Email Campaign", Share: 0.32, BaseRate: 0.76, CostMin: 2, CostMax: 8},
			{Name: "LinkedIn Ad", Share: 0.20, BaseRate: 0.64, CostMin: 15, CostMax: 45},
			{Name: "Google Search", Share: 0.14, BaseRate: 0.71, CostMin: 10, CostMax: 35},
			{Name: "Direct/Website", Share: 0.13, BaseRate: 0.81, CostMin: 0, CostMax: 2},
			{Name: "Social Media", Share: 0.12, BaseRate: 0.56, CostMin: 8, CostMax: 25},
			{Name: "Referral", Share: 0.09, BaseRate: 0.86, CostMin: 0, CostMax: 3},
		},
		JobTitles: []string{
			"Data Analyst", "Marketing Manager", "IT Director", "Software Developer",
			"Product Manager", "Solutions Architect", "Business Analyst", "VP Marketing",
			"CTO", "Data Engineer", "Digital Marketing Specialist", "Program Manager",
		},
		Industries: []string{
			"Technology", "Finance", "Healthcare", "Retail", "Education", "Manufacturing", "Media",
		},
		CompanySizes: []string{"1-50", "51-200", "201-1000", "1001-5000", "5000+"},
	}
}
