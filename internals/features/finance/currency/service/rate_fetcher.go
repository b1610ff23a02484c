package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"kursusku_backend/internals/configs"
)

type providerResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

/* =========================================================
   Direct fetcher: provider bisa quote terhadap base apa pun
========================================================= */

type DirectRateFetcher struct {
	Client *resty.Client
	URL    string // contoh: https://open.er-api.com/v6/latest
	APIKey string
}

func (f *DirectRateFetcher) Fetch(ctx context.Context, base string) (map[string]float64, error) {
	resp, err := f.request(ctx, base)
	if err != nil {
		return nil, err
	}
	if _, ok := resp.Rates[strings.ToUpper(base)]; !ok {
		// provider yang sehat selalu menyertakan base=1 di tabelnya
		resp.Rates[strings.ToUpper(base)] = 1
	}
	return resp.Rates, nil
}

func (f *DirectRateFetcher) request(ctx context.Context, base string) (*providerResponse, error) {
	req := f.Client.R().SetContext(ctx)
	if f.APIKey != "" {
		req.SetQueryParam("apikey", f.APIKey)
	}
	httpResp, err := req.Get(fmt.Sprintf("%s/%s", strings.TrimRight(f.URL, "/"), strings.ToUpper(base)))
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode() != 200 {
		return nil, fmt.Errorf("provider kurs balas status %d", httpResp.StatusCode())
	}
	var out providerResponse
	if err := json.Unmarshal(httpResp.Body(), &out); err != nil {
		return nil, fmt.Errorf("response provider tidak valid: %w", err)
	}
	if len(out.Rates) == 0 {
		return nil, fmt.Errorf("provider tidak mengembalikan tabel kurs untuk %s", base)
	}
	return &out, nil
}

/* =========================================================
   Fixed-base fetcher: provider hanya quote terhadap satu base
   tetap; kurs base lain dihitung cross-rate lewat base tetap.
========================================================= */

type FixedBaseRateFetcher struct {
	Client    *resty.Client
	URL       string
	APIKey    string
	FixedBase string // misal "USD"
}

func (f *FixedBaseRateFetcher) Fetch(ctx context.Context, base string) (map[string]float64, error) {
	inner := &DirectRateFetcher{Client: f.Client, URL: f.URL, APIKey: f.APIKey}
	table, err := inner.request(ctx, f.FixedBase)
	if err != nil {
		return nil, err
	}

	base = strings.ToUpper(base)
	if base == strings.ToUpper(f.FixedBase) {
		table.Rates[base] = 1
		return table.Rates, nil
	}

	baseRate, ok := table.Rates[base]
	if !ok || baseRate == 0 {
		return nil, fmt.Errorf("kurs %s tidak tersedia di tabel provider (base tetap %s)", base, f.FixedBase)
	}

	// cross-rate: r[c]/r[base] = nilai 1 base dalam mata uang c
	cross := make(map[string]float64, len(table.Rates))
	for code, rate := range table.Rates {
		cross[code] = rate / baseRate
	}
	cross[base] = 1
	return cross, nil
}

/* =========================================================
   Factory dari config
========================================================= */

func NewRateFetcherFromConfig() RateFetcher {
	client := resty.New()
	if configs.RateProviderMode == "fixed_base" {
		return &FixedBaseRateFetcher{
			Client:    client,
			URL:       configs.RateProviderURL,
			APIKey:    configs.RateProviderKey,
			FixedBase: configs.RateBaseCurrency,
		}
	}
	return &DirectRateFetcher{
		Client: client,
		URL:    configs.RateProviderURL,
		APIKey: configs.RateProviderKey,
	}
}
