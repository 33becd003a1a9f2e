package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cscruggs10/autointel/internal/models"
)

// FormatRegistry resolves an auction name to the column mapping its
// runlist exports use. Format groups (many auction locations sharing one
// layout) are checked first, in registration order, then exact
// per-auction mappings. Resolution is deterministic: the first group
// whose keywords match wins.
type FormatRegistry struct {
	mu       sync.RWMutex
	groups   []models.FormatGroup
	auctions map[string]models.Mapping
	// registration order of exact auction names, for stable format listings
	auctionOrder []string
}

// NewFormatRegistry returns a registry seeded with the production format
// groups
func NewFormatRegistry() *FormatRegistry {
	r := &FormatRegistry{
		auctions: make(map[string]models.Mapping),
	}
	for _, g := range defaultFormatGroups() {
		// seeded groups are known valid
		_ = r.RegisterGroup(g)
	}
	return r
}

// Resolve returns the mapping for an auction name, or an
// *models.UnknownFormatError when no group or exact mapping covers it
func (r *FormatRegistry) Resolve(auctionName string) (*models.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.groups {
		if r.groups[i].Matches(auctionName) {
			mapping := r.groups[i].Mapping
			return &mapping, nil
		}
	}

	if mapping, ok := r.auctions[strings.ToLower(strings.TrimSpace(auctionName))]; ok {
		return &mapping, nil
	}

	return nil, &models.UnknownFormatError{
		AuctionName: auctionName,
		Supported:   r.supportedNamesLocked(),
	}
}

// RegisterGroup adds a format group covering every auction whose name
// contains one of the group's keywords
func (r *FormatRegistry) RegisterGroup(group models.FormatGroup) error {
	if err := group.Mapping.Validate(); err != nil {
		return fmt.Errorf("format group %q: %w", group.Name, err)
	}
	if len(group.Keywords) == 0 {
		return fmt.Errorf("format group %q has no keywords", group.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, group)
	return nil
}

// RegisterAuction adds or replaces an exact per-auction mapping
func (r *FormatRegistry) RegisterAuction(auctionName string, mapping models.Mapping) error {
	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("auction %q: %w", auctionName, err)
	}

	key := strings.ToLower(strings.TrimSpace(auctionName))
	if key == "" {
		return fmt.Errorf("auction name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.auctions[key]; !exists {
		r.auctionOrder = append(r.auctionOrder, auctionName)
	}
	r.auctions[key] = mapping
	return nil
}

// SupportedFormats enumerates registered groups and exact auctions
func (r *FormatRegistry) SupportedFormats() []models.FormatInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]models.FormatInfo, 0, len(r.groups)+len(r.auctionOrder))
	for _, g := range r.groups {
		infos = append(infos, models.FormatInfo{
			Name:        g.Name,
			Kind:        "group",
			Description: g.Description,
		})
	}
	for _, name := range r.auctionOrder {
		infos = append(infos, models.FormatInfo{
			Name: name,
			Kind: "auction",
		})
	}
	return infos
}

func (r *FormatRegistry) supportedNamesLocked() []string {
	names := make([]string, 0, len(r.groups)+len(r.auctionOrder))
	for _, g := range r.groups {
		names = append(names, g.Name)
	}
	names = append(names, r.auctionOrder...)
	return names
}

// defaultFormatGroups returns the auction chains whose layouts ship with
// the system: the Americas Auto Auction "Edge Pipeline" export and the
// Manheim export
func defaultFormatGroups() []models.FormatGroup {
	return []models.FormatGroup{
		{
			Name:        "americas",
			Description: "Americas Auto Auction locations (Edge Pipeline export)",
			Keywords:    []string{"americas auto auction", "america's auto auction"},
			Mapping: models.Mapping{
				VIN:                "VIN",
				Year:               "Year",
				Make:               "Make",
				Model:              "Model",
				Style:              "Series",
				Mileage:            "Odometer",
				LaneRun:            "Lane/Run",
				StockNumber:        "Stock #",
				ExteriorColor:      "Exterior Color",
				HasConditionReport: "CR Available",
				Grade:              "CR Grade",
			},
		},
		{
			Name:        "manheim",
			Description: "Manheim auction locations",
			Keywords:    []string{"manheim"},
			Mapping: models.Mapping{
				VIN:           "VIN",
				Year:          "YEAR",
				Make:          "MAKE",
				Model:         "MODEL",
				Mileage:       "ODOMETER",
				Lane:          "LANE",
				RunNumber:     "RUN",
				StockNumber:   "STOCK NUMBER",
				ExteriorColor: "EXT COLOR",
				InteriorColor: "INT COLOR",
				Grade:         "GRADE",
				MMRValue:      "MMR",
			},
		},
	}
}
