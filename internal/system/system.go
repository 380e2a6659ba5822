package system

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open file limit. A mixdown opens one input per
// cue, which easily exceeds the common default of 256.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the open file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise the open file limit: %v", err)
	} else {
		log.Printf("[*] Open file limit raised to %d", rLimit.Cur)
	}
}

// FindLatestFile returns the most recently modified file in dir whose name
// ends with one of exts (case-insensitive).
func FindLatestFile(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files in %s", strings.Join(exts, "/"), dir)
	}

	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ProbeDuration asks ffprobe for the duration of a media file in seconds.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: unexpected output %q", path, out)
	}

	return duration, nil
}

// HasFFmpeg reports whether the ffmpeg binary is on PATH.
func HasFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// DefaultWorkers is the number of logical CPUs, or runtime.NumCPU when the
// host cannot be queried.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// HostStats describes the machine a sampling run happens on.
type HostStats struct {
	LogicalCPUs    int     `json:"logicalCpus"`
	PhysicalCPUs   int     `json:"physicalCpus"`
	TotalMemory    uint64  `json:"totalMemory"`
	AvailMemory    uint64  `json:"availableMemory"`
	MemUsedPercent float64 `json:"memUsedPercent"`
}

// ReadHostStats collects HostStats. Fields that cannot be read stay zero.
func ReadHostStats() (HostStats, error) {
	var s HostStats
	var errs []string

	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	} else {
		errs = append(errs, err.Error())
	}
	if n, err := cpu.Counts(false); err == nil {
		s.PhysicalCPUs = n
	} else {
		errs = append(errs, err.Error())
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.AvailMemory = vm.Available
		s.MemUsedPercent = vm.UsedPercent
	} else {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return s, fmt.Errorf("host stats: %s", strings.Join(errs, "; "))
	}
	return s, nil
}

func (s HostStats) String() string {
	return fmt.Sprintf("%d logical / %d physical CPUs, %.1f GiB total, %.1f GiB available (%.0f%% used)",
		s.LogicalCPUs, s.PhysicalCPUs,
		float64(s.TotalMemory)/(1<<30), float64(s.AvailMemory)/(1<<30), s.MemUsedPercent)
}
