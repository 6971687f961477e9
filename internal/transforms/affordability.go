package transforms

import (
	"fmt"

	"hudhousing/internal/catalog"
	"hudhousing/internal/models"
)

// Affordability normalizes the Location Affordability Index CSV: housing
// cost as a share of income for owners and renters, by county and year.
func (n *Normalizer) Affordability(payload *models.DatasetPayload) ([]models.AffordabilityRecord, error) {
	var records []models.AffordabilityRecord

	for _, table := range payload.Tables {
		cols := newColumns(table)
		if err := cols.require(catalog.HousingAffordability,
			"fips", "county_name", "state_code", "year",
			"median_income", "owner_cost_share", "renter_cost_share"); err != nil {
			return nil, err
		}

		for _, row := range table.Rows {
			rec := models.AffordabilityRecord{
				FIPS:       zfill(cols.get(row, "fips"), 9),
				CountyName: cols.get(row, "county_name"),
				StateCode:  cols.get(row, "state_code"),
				Year:       cols.get(row, "year"),
			}

			var err error
			if rec.MedianIncome, err = cellInt(cols.get(row, "median_income")); err != nil {
				return nil, &ValidationError{Dataset: catalog.HousingAffordability,
					Reason: "median_income: " + err.Error()}
			}
			if rec.OwnerCostShare, err = cellFloat(cols.get(row, "owner_cost_share")); err != nil {
				return nil, &ValidationError{Dataset: catalog.HousingAffordability,
					Reason: "owner_cost_share: " + err.Error()}
			}
			if rec.RenterCostShare, err = cellFloat(cols.get(row, "renter_cost_share")); err != nil {
				return nil, &ValidationError{Dataset: catalog.HousingAffordability,
					Reason: "renter_cost_share: " + err.Error()}
			}

			records = append(records, rec)
		}

		n.log.Infof("Loaded affordability index: %d rows", len(table.Rows))
	}

	return records, nil
}

// ValidateAffordability checks the invariants of a normalized affordability set
func ValidateAffordability(records []models.AffordabilityRecord) error {
	for _, rec := range records {
		if rec.MedianIncome <= 0 {
			return &ValidationError{Dataset: catalog.HousingAffordability,
				Reason: fmt.Sprintf("%s: median income must be positive", rec.FIPS)}
		}
		if rec.OwnerCostShare < 0 || rec.OwnerCostShare > 100 {
			return &ValidationError{Dataset: catalog.HousingAffordability,
				Reason: fmt.Sprintf("%s: owner cost share out of range: %f", rec.FIPS, rec.OwnerCostShare)}
		}
		if rec.RenterCostShare < 0 || rec.RenterCostShare > 100 {
			return &ValidationError{Dataset: catalog.HousingAffordability,
				Reason: fmt.Sprintf("%s: renter cost share out of range: %f", rec.FIPS, rec.RenterCostShare)}
		}
	}
	return nil
}
