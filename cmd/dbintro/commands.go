package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjaus/dbintro"
	"github.com/bjaus/dbintro/sqlite"
)

func runReport(cmd *cobra.Command, args []string) error {
	f, err := dbintro.ParseFormat(format)
	if err != nil {
		return err
	}

	var opts []dbintro.Option
	if layoutPath != "" {
		layout, err := loadLayout(layoutPath)
		if err != nil {
			return err
		}
		opts = append(opts, dbintro.WithLayout(layout))
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	src, closeSrc, err := openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	report, err := dbintro.Build(ctx, src, opts...)
	if err != nil {
		logger.Error("Report generation failed", zap.Error(err))
		return err
	}
	data, err := dbintro.Marshal(f, report)
	if err != nil {
		return err
	}
	logger.Debug("Report rendered",
		zap.String("format", f.String()),
		zap.Int("sections", len(report.Sections)),
		zap.Int("bytes", len(data)))
	return writeOutput(cmd, data)
}

func runVersion(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	src, closeSrc, err := openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	v, err := src.GetVersion(ctx)
	if err != nil {
		return err
	}
	return writeOutput(cmd, []byte(v+"\n"))
}

func runModules(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	src, closeSrc, err := openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	mods, err := src.ListModules(ctx)
	if err != nil {
		return err
	}
	return writeOutput(cmd, []byte(strings.Join(mods, ",")+"\n"))
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	src, closeSrc, err := openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	snap, err := dbintro.TakeSnapshot(ctx, src)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := snap.WriteYAML(&buf); err != nil {
		return err
	}
	logger.Info("Snapshot taken",
		zap.String("version", snap.Version),
		zap.Int("functions", len(snap.Functions)))
	return writeOutput(cmd, buf.Bytes())
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// openSource returns the snapshot named by --snapshot, or a live SQLite
// source for --dsn.
func openSource() (dbintro.Source, func(), error) {
	if snapshotPath != "" {
		fh, err := os.Open(snapshotPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer fh.Close()
		snap, err := dbintro.LoadSnapshot(fh)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Loaded snapshot", zap.String("path", snapshotPath))
		return snap, func() {}, nil
	}

	db, err := sqlite.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Opened database",
		zap.String("dsn", dsn),
		zap.String("driver", sqlite.DriverType()))
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	return sqlite.NewSource(db, sqlite.WithLogger(logger)), closeDB, nil
}

func loadLayout(path string) (dbintro.Layout, error) {
	fh, err := os.Open(path)
	if err != nil {
		return dbintro.Layout{}, fmt.Errorf("failed to open layout: %w", err)
	}
	defer fh.Close()
	return dbintro.LoadLayout(fh)
}

func writeOutput(cmd *cobra.Command, data []byte) error {
	var w io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		fh, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer fh.Close()
		w = fh
	}
	_, err := w.Write(data)
	return err
}
