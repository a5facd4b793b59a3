// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package util

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
	"net/http"
	"os"
	"regexp"
	"runtime"
	"strings"
)

func Stats() func() {
	return func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Requested: %d MB",
			ms.Alloc/1024/1024, ms.TotalAlloc/1024/1024, ms.Sys/1024/1024)
		log.Debug().Msgf("Mallocs: %d, Frees: %d, GC: %d", ms.Mallocs, ms.Frees, ms.NumGC)
		log.Debug().Msgf("HeapAlloc: %d MB, HeapSys: %d MB, HeapIdle: %d MB",
			ms.HeapAlloc/1024/1024, ms.HeapSys/1024/1024, ms.HeapIdle/1024/1024)
		log.Debug().Msgf("HeapObjects: %d", ms.HeapObjects)
	}
}

func ApplyCliSettings(verbose bool, profile bool, pprofPort uint16) {
	if verbose {
		log.Warn().Msgf("Verbosity up")
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if profile {
		log.Info().Msgf("Profiling is enabled for this session. Server will listen on port %d", pprofPort)
		go func() {
			if err := http.ListenAndServe(fmt.Sprintf(":%d", pprofPort), nil); err != nil {
				log.Error().Err(err).Msgf("Error starting profiling server on port %d", pprofPort)
				return
			}
		}()
	}
}

// Every password string costs its header plus its bytes, and every evaluation result about as much again.
const bytesPerPassword = 3 * 16

// EstimateCorpusRam is a rough estimate, in bytes, of the memory needed to load and evaluate a corpus file
// of fileSize bytes holding about lines passwords.
func EstimateCorpusRam(fileSize, lines uint64) uint64 {
	return 2*fileSize + lines*bytesPerPassword
}

// CheckRam fails when the system does not have the required bytes of memory available. If the memory stats
// can't be read it only warns.
func CheckRam(required uint64) error {
	memStat, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Msgf("Estimated memory use %d MiB", required/(1024*1024))
		log.Warn().Msgf("This process will cause disk swapping and general slowness if your "+
			"current system memory is not at least %d MiB. ^C now to stop the process.", required/(1024*1024))
		return nil
	}

	log.Debug().Msgf("System has %.2f MiB of RAM available", float64(memStat.Available)/(1024*1024))
	if required > memStat.Available {
		return fmt.Errorf("your system does not have the minimum required RAM (%d MiB) to execute this process",
			required/(1024*1024))
	}

	return nil
}

// CheckCorpusFile checks there is enough memory to analyze the corpus at fileName.
func CheckCorpusFile(fileName string) error {
	stat, err := os.Stat(fileName)
	if err != nil {
		return err
	}

	size := uint64(stat.Size())
	// Passwords average about 10 bytes with the line break
	return CheckRam(EstimateCorpusRam(size, size/10))
}

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// ToScreamingSnakeCase turns a Go field name into its environment variable name, e.g. TLSCert into TLS_CERT.
func ToScreamingSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToUpper(snake)
}
