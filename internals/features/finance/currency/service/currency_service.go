package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultRateTTL: jendela kesegaran cache kurs. Entri lebih tua dari ini
// dianggap basi dan di-fetch ulang (tidak pernah di-evict lebih awal).
const DefaultRateTTL = 1 * time.Hour

// RateFetcher mengambil tabel kurs relatif terhadap base yang diminta.
// Diinject supaya staleness & refetch bisa dites tanpa network beneran.
type RateFetcher interface {
	Fetch(ctx context.Context, base string) (map[string]float64, error)
}

type rateEntry struct {
	rates     map[string]float64
	fetchedAt time.Time
}

// CurrencyConverter: read-through cache kurs per base currency.
type CurrencyConverter struct {
	fetcher RateFetcher
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]rateEntry
}

func NewCurrencyConverter(fetcher RateFetcher, ttl time.Duration, now func() time.Time) *CurrencyConverter {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	if now == nil {
		now = time.Now
	}
	return &CurrencyConverter{
		fetcher: fetcher,
		ttl:     ttl,
		now:     now,
		cache:   make(map[string]rateEntry),
	}
}

// Convert mengonversi amount dari satu mata uang ke mata uang lain.
// Kode sama → amount apa adanya, tanpa fetch.
func (s *CurrencyConverter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return 0, fmt.Errorf("kode mata uang kosong (from=%q, to=%q)", from, to)
	}
	if from == to {
		return amount, nil
	}

	rates, err := s.ratesFor(ctx, from)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[to]
	if !ok || rate == 0 {
		return 0, fmt.Errorf("kurs %s ke %s tidak tersedia di tabel provider", from, to)
	}
	return amount * rate, nil
}

// ratesFor mengembalikan tabel kurs relatif base; fetch kalau miss/basi.
// Lock hanya menutup akses map; fetch jalan di luar lock, kalau dua request
// miss bersamaan keduanya fetch dan tulisan terakhir menang (fetch idempotent).
func (s *CurrencyConverter) ratesFor(ctx context.Context, base string) (map[string]float64, error) {
	s.mu.Lock()
	entry, ok := s.cache[base]
	fresh := ok && s.now().Sub(entry.fetchedAt) < s.ttl
	s.mu.Unlock()

	if fresh {
		return entry.rates, nil
	}

	rates, err := s.fetcher.Fetch(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("gagal ambil kurs base %s: %w", base, err)
	}

	s.mu.Lock()
	s.cache[base] = rateEntry{rates: rates, fetchedAt: s.now()}
	s.mu.Unlock()

	return rates, nil
}

// WarmRefresh memaksa refresh entri cache satu base (dipakai scheduler).
func (s *CurrencyConverter) WarmRefresh(ctx context.Context, base string) error {
	base = strings.ToUpper(strings.TrimSpace(base))
	rates, err := s.fetcher.Fetch(ctx, base)
	if err != nil {
		return fmt.Errorf("warm refresh kurs %s gagal: %w", base, err)
	}
	s.mu.Lock()
	s.cache[base] = rateEntry{rates: rates, fetchedAt: s.now()}
	s.mu.Unlock()
	return nil
}
