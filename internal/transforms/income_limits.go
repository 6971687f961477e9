package transforms

import (
	"fmt"

	"hudhousing/internal/catalog"
	"hudhousing/internal/models"
)

// IncomeLimits normalizes the Section 8 income limits workbook. The source
// encodes the three limit tiers as ELI_n (30% AMI), l50_n (50% AMI) and
// l80_n (80% AMI) for household sizes 1-8.
func (n *Normalizer) IncomeLimits(ds catalog.Dataset, payload *models.DatasetPayload) ([]models.IncomeLimitRecord, error) {
	var records []models.IncomeLimitRecord

	for i, table := range payload.Tables {
		fiscalYear := ""
		if i < len(ds.Sources) {
			fiscalYear = ds.Sources[i].FiscalYear
		}

		cols := newColumns(table)
		if err := cols.require(ds.Key, "fips", "stusps", "state", "state_name",
			"hud_area_code", "hud_area_name", "county", "county_name", "metro"); err != nil {
			return nil, err
		}

		medianCol := "median" + fiscalYear
		if !cols.has(medianCol) {
			return nil, &ValidationError{Dataset: ds.Key, Reason: "missing column " + medianCol}
		}

		for _, row := range table.Rows {
			rec := models.IncomeLimitRecord{
				FIPS:        zfill(cols.get(row, "fips"), 9),
				StateCode:   cols.get(row, "stusps"),
				StateFIPS:   zfill(cols.get(row, "state"), 2),
				StateName:   cols.get(row, "state_name"),
				HUDAreaCode: cols.get(row, "hud_area_code"),
				HUDAreaName: cols.get(row, "hud_area_name"),
				CountyFIPS:  zfill(cols.get(row, "county"), 3),
				CountyName:  cols.get(row, "county_name"),
				FiscalYear:  fiscalYear,
			}

			var err error
			if rec.Metro, err = cellInt(cols.get(row, "metro")); err != nil {
				return nil, &ValidationError{Dataset: ds.Key, Reason: "bad metro value: " + err.Error()}
			}
			if rec.MedianIncome, err = cellInt(cols.get(row, medianCol)); err != nil {
				return nil, &ValidationError{Dataset: ds.Key, Reason: medianCol + ": " + err.Error()}
			}

			for size := 1; size <= 8; size++ {
				idx := size - 1
				if rec.ExtremelyLow[idx], err = cellInt(cols.get(row, fmt.Sprintf("ELI_%d", size))); err != nil {
					return nil, &ValidationError{Dataset: ds.Key, Reason: fmt.Sprintf("ELI_%d: %v", size, err)}
				}
				if rec.VeryLow[idx], err = cellInt(cols.get(row, fmt.Sprintf("l50_%d", size))); err != nil {
					return nil, &ValidationError{Dataset: ds.Key, Reason: fmt.Sprintf("l50_%d: %v", size, err)}
				}
				if rec.Low[idx], err = cellInt(cols.get(row, fmt.Sprintf("l80_%d", size))); err != nil {
					return nil, &ValidationError{Dataset: ds.Key, Reason: fmt.Sprintf("l80_%d: %v", size, err)}
				}
			}

			records = append(records, rec)
		}

		n.log.Infof("Loaded FY%s income limits: %d rows", fiscalYear, len(table.Rows))
	}

	return records, nil
}

// ValidateIncomeLimits checks the invariants of a normalized income limit set
func ValidateIncomeLimits(records []models.IncomeLimitRecord) error {
	for _, rec := range records {
		if rec.Metro != 0 && rec.Metro != 1 {
			return &ValidationError{Dataset: catalog.IncomeLimits,
				Reason: fmt.Sprintf("%s: metro must be 0 or 1, got %d", rec.FIPS, rec.Metro)}
		}
		if rec.MedianIncome <= 0 {
			return &ValidationError{Dataset: catalog.IncomeLimits,
				Reason: fmt.Sprintf("%s: median income must be positive", rec.FIPS)}
		}
		// Tier ordering: extremely low <= very low <= low for every size
		for idx := 0; idx < 8; idx++ {
			if rec.ExtremelyLow[idx] > rec.VeryLow[idx] {
				return &ValidationError{Dataset: catalog.IncomeLimits,
					Reason: fmt.Sprintf("%s: ELI exceeds VLI for household size %d", rec.FIPS, idx+1)}
			}
			if rec.VeryLow[idx] > rec.Low[idx] {
				return &ValidationError{Dataset: catalog.IncomeLimits,
					Reason: fmt.Sprintf("%s: VLI exceeds LI for household size %d", rec.FIPS, idx+1)}
			}
		}
	}
	return nil
}
