// Package seed turns the bundled Malaysian rental market datasets into
// catalog properties. Three regional CSV files (KL, Johor, Penang) ship with
// the binary; each row is a real listing with sqft and monthly rent.
package seed

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rentalhub/internal/domain"
)

//go:embed data/*.csv
var datasets embed.FS

type region struct {
	file   string
	prefix string
}

var regions = []region{
	{"data/kl.csv", "kl"},
	{"data/johor.csv", "jh"},
	{"data/penang.csv", "pg"},
}

// Properties parses all bundled datasets into catalog rows owned by ownerID.
func Properties(ownerID int64) ([]domain.Property, error) {
	var out []domain.Property
	for _, reg := range regions {
		f, err := datasets.Open(reg.file)
		if err != nil {
			return nil, fmt.Errorf("open dataset %s: %w", reg.file, err)
		}
		rows, err := parseRegion(f, reg.prefix, ownerID)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", reg.file, err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

func parseRegion(src io.Reader, prefix string, ownerID int64) ([]domain.Property, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = 7

	// Header row.
	if _, err := r.Read(); err != nil {
		return nil, err
	}

	var out []domain.Property
	for i := 0; ; i++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		sqft, err := parseNum(rec[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad sqft %q", i+1, rec[4])
		}
		// Column 5 is the sale price; only the rental column matters here.
		rent, err := parseNum(rec[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad rental %q", i+1, rec[6])
		}

		typeRaw := strings.TrimSpace(rec[3])
		rooms, bathrooms := specsForSqft(sqft)

		out = append(out, domain.Property{
			ID:          fmt.Sprintf("%s_%s", prefix, strings.TrimSpace(rec[0])),
			Title:       strings.TrimSpace(rec[1]),
			Location:    strings.TrimSpace(rec[2]),
			Price:       rent,
			Type:        mapType(typeRaw),
			Furnishing:  furnishingFor(i),
			Rooms:       rooms,
			Bathrooms:   bathrooms,
			Sqft:        sqft,
			Tags:        []string{typeRaw, "Available Now"},
			Description: fmt.Sprintf("A stunning %d sqft %s unit in %s. Perfect for those seeking comfort and convenience.", sqft, typeRaw, strings.TrimSpace(rec[2])),
			OwnerID:     ownerID,
		})
	}
	return out, nil
}

// specsForSqft estimates room counts from floor area.
func specsForSqft(sqft int) (rooms, bathrooms int) {
	switch {
	case sqft < 600:
		return 1, 1
	case sqft < 900:
		return 2, 2
	case sqft < 1500:
		return 3, 2
	default:
		return 4 + (sqft-1500)/1000, 3 + (sqft-1500)/1500
	}
}

var landedKinds = []string{"bungalow", "terrace", "semi-d", "cluster", "villa", "superlink", "1.5-sty"}

func mapType(raw string) domain.PropertyType {
	lower := strings.ToLower(raw)
	for _, kind := range landedKinds {
		if strings.Contains(lower, kind) {
			return domain.PropertyLanded
		}
	}
	// Apartment, Condo, Service Res, SOHO all present as condos.
	return domain.PropertyCondo
}

// furnishingFor assigns furnishing deterministically by row so reseeding
// produces a stable catalog.
func furnishingFor(row int) domain.Furnishing {
	switch row % 3 {
	case 0:
		return domain.FullyFurnished
	case 1:
		return domain.PartiallyFurnished
	default:
		return domain.Unfurnished
	}
}

func parseNum(raw string) (int, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.Atoi(clean)
}
