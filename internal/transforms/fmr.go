package transforms

import (
	"fmt"

	"hudhousing/internal/catalog"
	"hudhousing/internal/models"
)

// FairMarketRents combines the per-fiscal-year FMR workbooks into one record
// set. Source column names are lowercase-matched; the population column name
// changed between census vintages (pop2020 vs pop2022).
func (n *Normalizer) FairMarketRents(ds catalog.Dataset, payload *models.DatasetPayload) ([]models.FMRRecord, error) {
	var records []models.FMRRecord

	for i, table := range payload.Tables {
		fiscalYear := ""
		if i < len(ds.Sources) {
			fiscalYear = ds.Sources[i].FiscalYear
		}

		cols := newColumns(table)
		if err := cols.require(ds.Key, "stusps", "state", "countyname", "fips",
			"hud_area_code", "hud_area_name", "metro",
			"fmr_0", "fmr_1", "fmr_2", "fmr_3", "fmr_4"); err != nil {
			return nil, err
		}

		popCol := "pop2020"
		if !cols.has(popCol) {
			popCol = "pop2022"
		}
		if !cols.has(popCol) {
			return nil, &ValidationError{Dataset: ds.Key, Reason: "missing population column (pop2020/pop2022)"}
		}

		for _, row := range table.Rows {
			rec := models.FMRRecord{
				StateCode:   cols.get(row, "stusps"),
				StateFIPS:   zfill(cols.get(row, "state"), 2),
				CountyName:  cols.get(row, "countyname"),
				FIPS:        zfill(cols.get(row, "fips"), 9),
				HUDAreaCode: cols.get(row, "hud_area_code"),
				HUDAreaName: cols.get(row, "hud_area_name"),
				FiscalYear:  fiscalYear,
			}

			var err error
			if rec.Metro, err = cellInt(cols.get(row, "metro")); err != nil {
				return nil, &ValidationError{Dataset: ds.Key, Reason: "bad metro value: " + err.Error()}
			}
			if rec.Population, err = cellInt(cols.get(row, popCol)); err != nil {
				return nil, &ValidationError{Dataset: ds.Key, Reason: "bad population value: " + err.Error()}
			}

			rents := []*int{&rec.FMR0BR, &rec.FMR1BR, &rec.FMR2BR, &rec.FMR3BR, &rec.FMR4BR}
			for br, dst := range rents {
				col := fmt.Sprintf("fmr_%d", br)
				if *dst, err = cellInt(cols.get(row, col)); err != nil {
					return nil, &ValidationError{Dataset: ds.Key, Reason: col + ": " + err.Error()}
				}
			}

			records = append(records, rec)
		}

		n.log.Infof("Loaded FY%s fair market rents: %d rows", fiscalYear, len(table.Rows))
	}

	return records, nil
}

// ValidateFMR checks the invariants of a normalized FMR record set
func ValidateFMR(records []models.FMRRecord) error {
	for _, rec := range records {
		if rec.Metro != 0 && rec.Metro != 1 {
			return &ValidationError{Dataset: catalog.FairMarketRents,
				Reason: fmt.Sprintf("%s: metro must be 0 or 1, got %d", rec.FIPS, rec.Metro)}
		}
		for br, rent := range []int{rec.FMR0BR, rec.FMR1BR, rec.FMR2BR, rec.FMR3BR, rec.FMR4BR} {
			if rent <= 0 {
				return &ValidationError{Dataset: catalog.FairMarketRents,
					Reason: fmt.Sprintf("%s: fmr_%dbr must be positive, got %d", rec.FIPS, br, rent)}
			}
		}
		if rec.FIPS == "" || rec.CountyName == "" || rec.StateCode == "" {
			return &ValidationError{Dataset: catalog.FairMarketRents,
				Reason: "record missing fips, county or state"}
		}
	}
	return nil
}
