package fetchers

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"hudhousing/internal/catalog"
	"hudhousing/internal/logger"
	"hudhousing/internal/models"
	"hudhousing/internal/tabular"

	"github.com/go-resty/resty/v2"
)

// NetworkError reports a transport or HTTP-status failure for one source URL
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error, if any
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataFetcher handles downloading and parsing HUD dataset files
type DataFetcher struct {
	client  *resty.Client
	catalog *catalog.Catalog
	log     *logger.Logger
}

// NewDataFetcher creates a new data fetcher instance
func NewDataFetcher(cat *catalog.Catalog, timeout time.Duration) *DataFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &DataFetcher{
		client:  client,
		catalog: cat,
		log:     logger.WithComponent("fetchers"),
	}
}

// download issues an unauthenticated GET and returns the response body
func (f *DataFetcher) download(ctx context.Context, sourceURL string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(sourceURL)

	if err != nil {
		return nil, &NetworkError{URL: sourceURL, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &NetworkError{URL: sourceURL, StatusCode: resp.StatusCode()}
	}

	return resp.Body(), nil
}

// FetchDataset downloads and parses every source file of one dataset.
// An unknown key fails with catalog.ErrUnknownDataset before any request.
func (f *DataFetcher) FetchDataset(ctx context.Context, key string) (*models.DatasetPayload, error) {
	ds, err := f.catalog.Lookup(key)
	if err != nil {
		return nil, err
	}

	payload := &models.DatasetPayload{Key: ds.Key}

	for _, src := range ds.Sources {
		f.log.Infof("Fetching %s from %s", ds.Key, src.URL)

		body, err := f.download(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		f.log.Debugf("Downloaded %d bytes from %s", len(body), src.URL)

		payload.RawFiles = append(payload.RawFiles, models.RawFile{
			Name: rawFileName(ds.Key, src),
			Data: body,
		})

		// The PIT workbook carries one sheet per year; its parsing is
		// driven by the homeless counts transform, not here.
		if ds.Key == catalog.HomelessCounts {
			continue
		}

		table, err := parseSource(body, src)
		if err != nil {
			return nil, err
		}
		payload.Tables = append(payload.Tables, table)
	}

	return payload, nil
}

// FetchRows downloads one dataset and returns its raw rows in source order
func (f *DataFetcher) FetchRows(ctx context.Context, key string) ([]tabular.Row, error) {
	payload, err := f.FetchDataset(ctx, key)
	if err != nil {
		return nil, err
	}

	rows := []tabular.Row{}
	for _, table := range payload.Tables {
		rows = append(rows, table.Rows...)
	}

	// Flatten the per-year PIT sheets for the raw-row view
	if key == catalog.HomelessCounts && len(payload.RawFiles) > 0 {
		wb, err := tabular.OpenWorkbook(payload.RawFiles[0].Data)
		if err != nil {
			return nil, err
		}
		defer wb.Close()

		for _, sheet := range wb.SheetNames() {
			table, err := wb.Sheet(sheet)
			if err != nil {
				return nil, err
			}
			rows = append(rows, table.Rows...)
		}
	}

	return rows, nil
}

// fetchResult carries one dataset's payload through the FetchAll fan-in
type fetchResult struct {
	key     string
	payload *models.DatasetPayload
	err     error
}

// FetchAll fetches all catalog datasets concurrently. Failed datasets are
// reported per key; the returned payload map contains every success.
func (f *DataFetcher) FetchAll(ctx context.Context) (map[string]*models.DatasetPayload, map[string]error) {
	keys := f.catalog.Keys()
	f.log.Infof("Starting data fetch for %d datasets", len(keys))

	results := make(chan fetchResult, len(keys))
	for _, key := range keys {
		go func(key string) {
			payload, err := f.FetchDataset(ctx, key)
			results <- fetchResult{key: key, payload: payload, err: err}
		}(key)
	}

	payloads := make(map[string]*models.DatasetPayload)
	errs := make(map[string]error)

	for range keys {
		select {
		case res := <-results:
			if res.err != nil {
				f.log.Error(fmt.Sprintf("Dataset %s fetch failed", res.key), res.err)
				errs[res.key] = res.err
				continue
			}
			payloads[res.key] = res.payload
		case <-ctx.Done():
			for _, key := range keys {
				if _, ok := payloads[key]; !ok {
					if _, failed := errs[key]; !failed {
						errs[key] = ctx.Err()
					}
				}
			}
			return payloads, errs
		}
	}

	f.log.Infof("Data fetch completed: %d succeeded, %d failed", len(payloads), len(errs))
	return payloads, errs
}

// parseSource parses one downloaded file according to its catalog format
func parseSource(body []byte, src catalog.Source) (*tabular.Table, error) {
	switch src.Format {
	case catalog.FormatCSV:
		return tabular.ParseCSVBytes(body)
	case catalog.FormatXLSX:
		return tabular.ParseXLSX(body, "")
	default:
		return nil, fmt.Errorf("unsupported source format %q", src.Format)
	}
}

// rawFileName derives an archival file name for a downloaded source
func rawFileName(key string, src catalog.Source) string {
	name := key
	if src.FiscalYear != "" {
		name += "_" + src.FiscalYear
	}

	ext := "." + string(src.Format)
	if u, err := url.Parse(src.URL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return name + ext
}
