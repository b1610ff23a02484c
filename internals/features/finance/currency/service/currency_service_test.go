package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher menghitung berapa kali Fetch dipanggil supaya perilaku
// cache (hit, miss, basi) bisa diamati.
type fakeFetcher struct {
	rates map[string]map[string]float64
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, base string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	table, ok := f.rates[base]
	if !ok {
		return nil, errors.New("base tidak dikenal")
	}
	return table, nil
}

// fakeClock: jam yang bisa dimajukan manual.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time        { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestConverter(f *fakeFetcher, clock *fakeClock) *CurrencyConverter {
	return NewCurrencyConverter(f, DefaultRateTTL, clock.Now)
}

func TestConvert_SameCurrencyNoFetch(t *testing.T) {
	f := &fakeFetcher{}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	conv := newTestConverter(f, clock)

	got, err := conv.Convert(context.Background(), 150, "USD", "USD")
	require.NoError(t, err)
	assert.Equal(t, 150.0, got)
	assert.Equal(t, 0, f.calls, "konversi identitas tidak boleh menyentuh provider")
}

func TestConvert_CacheHitWithinTTL(t *testing.T) {
	f := &fakeFetcher{rates: map[string]map[string]float64{
		"USD": {"USD": 1, "IDR": 16000},
	}}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	conv := newTestConverter(f, clock)

	_, err := conv.Convert(context.Background(), 10, "USD", "IDR")
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	got, err := conv.Convert(context.Background(), 10, "USD", "IDR")
	require.NoError(t, err)

	assert.Equal(t, 160000.0, got)
	assert.Equal(t, 1, f.calls, "entri masih segar, fetch kedua tidak boleh terjadi")
}

func TestConvert_StaleEntryRefetched(t *testing.T) {
	f := &fakeFetcher{rates: map[string]map[string]float64{
		"USD": {"USD": 1, "IDR": 16000},
	}}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	conv := newTestConverter(f, clock)

	_, err := conv.Convert(context.Background(), 10, "USD", "IDR")
	require.NoError(t, err)

	// kurs berubah di provider, cache belum tahu
	f.rates["USD"]["IDR"] = 17000
	clock.Advance(61 * time.Minute)

	got, err := conv.Convert(context.Background(), 10, "USD", "IDR")
	require.NoError(t, err)

	assert.Equal(t, 170000.0, got)
	assert.Equal(t, 2, f.calls, "entri basi harus di-fetch ulang")
}

func TestConvert_MissingTargetNamesBothCurrencies(t *testing.T) {
	f := &fakeFetcher{rates: map[string]map[string]float64{
		"USD": {"USD": 1, "IDR": 16000},
	}}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	conv := newTestConverter(f, clock)

	_, err := conv.Convert(context.Background(), 10, "USD", "XYZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USD")
	assert.Contains(t, err.Error(), "XYZ")
}

func TestConvert_FetcherErrorPropagates(t *testing.T) {
	f := &fakeFetcher{err: errors.New("provider down")}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	conv := newTestConverter(f, clock)

	_, err := conv.Convert(context.Background(), 10, "USD", "IDR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USD")
}

func TestConvert_NormalizesCurrencyCodes(t *testing.T) {
	f := &fakeFetcher{rates: map[string]map[string]float64{
		"USD": {"USD": 1, "EUR": 0.9},
	}}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	conv := newTestConverter(f, clock)

	got, err := conv.Convert(context.Background(), 100, " usd ", "eur")
	require.NoError(t, err)
	assert.InDelta(t, 90.0, got, 1e-9)
}

func TestWarmRefresh_OverwritesFreshEntry(t *testing.T) {
	f := &fakeFetcher{rates: map[string]map[string]float64{
		"USD": {"USD": 1, "IDR": 16000},
	}}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	conv := newTestConverter(f, clock)

	_, err := conv.Convert(context.Background(), 1, "USD", "IDR")
	require.NoError(t, err)

	f.rates["USD"]["IDR"] = 15500
	require.NoError(t, conv.WarmRefresh(context.Background(), "usd"))

	got, err := conv.Convert(context.Background(), 1, "USD", "IDR")
	require.NoError(t, err)
	assert.Equal(t, 15500.0, got)
	assert.Equal(t, 2, f.calls, "setelah warm refresh, convert pakai cache baru tanpa fetch tambahan")
}

func newProviderStub(t *testing.T, rates map[string]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": "success",
			"rates":  rates,
		})
	}))
}

func TestFixedBaseFetcher_CrossRate(t *testing.T) {
	// provider hanya quote terhadap USD; minta base EUR → cross-rate
	srv := newProviderStub(t, map[string]float64{"USD": 1, "EUR": 0.8, "IDR": 16000})
	defer srv.Close()

	f := &FixedBaseRateFetcher{
		Client:    resty.New(),
		URL:       srv.URL,
		FixedBase: "USD",
	}

	rates, err := f.Fetch(context.Background(), "EUR")
	require.NoError(t, err)

	// 1 EUR = 1.25 USD = 20000 IDR
	assert.InDelta(t, 1.25, rates["USD"], 1e-9)
	assert.InDelta(t, 20000.0, rates["IDR"], 1e-9)
	assert.InDelta(t, 1.0, rates["EUR"], 1e-9)
}

func TestFixedBaseFetcher_UnknownBase(t *testing.T) {
	srv := newProviderStub(t, map[string]float64{"USD": 1, "IDR": 16000})
	defer srv.Close()

	f := &FixedBaseRateFetcher{
		Client:    resty.New(),
		URL:       srv.URL,
		FixedBase: "USD",
	}

	_, err := f.Fetch(context.Background(), "XYZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XYZ")
}

func TestDirectFetcher_EnsuresBaseEntry(t *testing.T) {
	// sebagian provider tidak menyertakan base=1 di tabelnya
	srv := newProviderStub(t, map[string]float64{"IDR": 16000, "EUR": 0.9})
	defer srv.Close()

	f := &DirectRateFetcher{Client: resty.New(), URL: srv.URL}

	rates, err := f.Fetch(context.Background(), "usd")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rates["USD"])
	assert.Equal(t, 16000.0, rates["IDR"])
}
