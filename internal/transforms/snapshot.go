package transforms

import (
	"time"

	"hudhousing/internal/catalog"
	"hudhousing/internal/models"
)

// BuildSnapshot normalizes and validates a set of fetched payloads into one
// HousingData snapshot. Datasets that fail are reported per key; the
// snapshot carries every success.
func (n *Normalizer) BuildSnapshot(cat *catalog.Catalog, payloads map[string]*models.DatasetPayload) (*models.HousingData, map[string]error) {
	data := &models.HousingData{Timestamp: time.Now().UTC()}
	errs := make(map[string]error)

	for _, key := range cat.Keys() {
		payload, ok := payloads[key]
		if !ok {
			continue
		}

		ds, err := cat.Lookup(key)
		if err != nil {
			errs[key] = err
			continue
		}

		switch key {
		case catalog.FairMarketRents:
			records, err := n.FairMarketRents(ds, payload)
			if err == nil {
				err = ValidateFMR(records)
			}
			if err != nil {
				errs[key] = err
				continue
			}
			data.FairMarketRents = records

		case catalog.IncomeLimits:
			records, err := n.IncomeLimits(ds, payload)
			if err == nil {
				err = ValidateIncomeLimits(records)
			}
			if err != nil {
				errs[key] = err
				continue
			}
			data.IncomeLimits = records

		case catalog.HousingAffordability:
			records, err := n.Affordability(payload)
			if err == nil {
				err = ValidateAffordability(records)
			}
			if err != nil {
				errs[key] = err
				continue
			}
			data.Affordability = records

		case catalog.HomelessCounts:
			records, err := n.HomelessCounts(payload)
			if err == nil {
				err = ValidateHomelessCounts(records)
			}
			if err != nil {
				errs[key] = err
				continue
			}
			data.HomelessCounts = records
		}
	}

	return data, errs
}
