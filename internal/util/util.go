package util

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
	"net/http"
	"runtime"
	"strings"
	"time"
	"unicode"
)

// Stats logs the elapsed time and memory use at debug level when the returned
// func is called. Meant to be deferred.
func Stats() func() {
	start := time.Now()
	return func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("time to run %v", time.Since(start))
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Sys: %d MB",
			ms.Alloc/1024/1024, ms.TotalAlloc/1024/1024, ms.Sys/1024/1024)
		log.Debug().Msgf("Mallocs: %d, Frees: %d, GC: %d", ms.Mallocs, ms.Frees, ms.NumGC)
	}
}

func ApplyCliSettings(verbose bool, profile bool, pprofPort uint16) {
	if verbose {
		log.Warn().Msgf("verbosity up")
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if profile {
		log.Info().Msgf("profiling is enabled for this session. Server will listen on port %d", pprofPort)
		go func() {
			if err := http.ListenAndServe(fmt.Sprintf("localhost:%d", pprofPort), nil); err != nil {
				log.Error().Err(err).Msgf("error starting profiling server on port %d", pprofPort)
				return
			}
		}()
	}
}

type Memory struct {
	HostTotalMiB     float64 `json:"hostTotalMiB"`
	HostAvailableMiB float64 `json:"hostAvailableMiB"`
	HeapAllocMiB     float64 `json:"heapAllocMiB"`
	Goroutines       int     `json:"goroutines"`
}

// HostMemory reports host memory from gopsutil along with the process heap.
// Host values are left at zero when the platform does not expose them.
func HostMemory() Memory {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m := Memory{
		HeapAllocMiB: float64(ms.HeapAlloc) / (1024 * 1024),
		Goroutines:   runtime.NumGoroutine(),
	}
	if memStat, err := mem.VirtualMemory(); err == nil {
		m.HostTotalMiB = float64(memStat.Total) / (1024 * 1024)
		m.HostAvailableMiB = float64(memStat.Available) / (1024 * 1024)
	} else {
		log.Debug().Err(err).Msg("error getting host memory")
	}
	return m
}

// ToScreamingSnakeCase turns struct field names like GuessRate or TLSCert into
// the env var form GUESS_RATE / TLS_CERT. Space separated lists are converted
// word by word.
func ToScreamingSnakeCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = screamingSnake(w)
	}
	return strings.Join(words, " ")
}

func screamingSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
