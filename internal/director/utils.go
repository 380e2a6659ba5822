package director

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/sceneclock/internal/system"
)

// GeneratePlanPath creates a timestamped plan filename in dir
func GeneratePlanPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("plan_%s.yaml", timestamp))
}

// FindLatestProject finds the most recently modified project file in dir
func FindLatestProject(dir string) (string, error) {
	path, err := system.FindLatestFile(dir, ".yaml", ".yml")
	if err != nil {
		return "", fmt.Errorf("no project found: %w", err)
	}
	return path, nil
}
