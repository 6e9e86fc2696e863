package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kitchen-defense/internal/level"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check level files",
	Long: `Parse and validate level files. Each file prints OK or its error
code. With no arguments every .yaml file in --levels is checked.

Examples:
  kitchen validate ./levels/draft.yaml
  kitchen validate --levels ./levels`,
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 && flagLevels != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(flagLevels, pattern))
			if err != nil {
				return err
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return errors.New("no level files given")
	}

	failed := 0
	for _, path := range files {
		lvl, err := level.LoadFile(path)
		if err == nil {
			fmt.Printf("  OK    %s (%s, %d waves)\n", path, lvl.ID, len(lvl.Waves))
			continue
		}
		failed++
		code := "PARSE"
		var verr level.ValidationError
		if errors.As(err, &verr) {
			code = verr.Code
		}
		fmt.Printf("  FAIL  %s [%s] %v\n", path, code, err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level files invalid", failed, len(files))
	}
	return nil
}
