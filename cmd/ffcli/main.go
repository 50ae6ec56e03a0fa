// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command ffcli is a thin wrapper around the ff package: it does no parsing
// of its own beyond cobra's flag handling (spec.md §6.4 Non-goals).
package main

import (
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/codff/fastfile"
)

func main() {
	logger := log.NewStdLogger(os.Stderr)

	root := &cobra.Command{
		Use:           "ffcli",
		Short:         "inspect and edit Call of Duty FastFile archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		detectCmd(logger),
		extractCmd(logger),
		renameCmd(logger),
		replaceCmd(logger),
		formatCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ffcli:", err)
		os.Exit(1)
	}
}

func detectCmd(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <archive.ff>",
		Short: "report the game/platform variant of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ff.Open(args[0], ff.Options{DisableAdvisoryLock: true, Logger: logger})
			if err != nil {
				return err
			}
			defer sess.Close()
			fmt.Printf("game=%s platform=%s signed=%t assets=%d\n",
				sess.Info.Game, sess.Info.Platform, sess.Info.IsSigned, sess.Idx.Header.AssetCount)
			return nil
		},
	}
}

func extractCmd(logger log.Logger) *cobra.Command {
	var outDir string
	var withHeader bool
	cmd := &cobra.Command{
		Use:   "extract <archive.ff>",
		Short: "dump every rawfile payload to outDir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ff.Open(args[0], ff.Options{DisableAdvisoryLock: true, Logger: logger})
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, rf := range sess.Idx.RawFiles {
				out := rf.ExportRaw()
				if withHeader {
					out, err = rf.ExportRawWithHeader(sess.Info, ff.LevelOptimal)
					if err != nil {
						return fmt.Errorf("export %s: %w", rf.Name, err)
					}
				}
				dst := outDir + "/" + rf.Name
				if err := os.WriteFile(dst, out, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", dst, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&withHeader, "with-header", false, "write each entry's raw payload record (header + name + content) instead of just its content")
	return cmd
}

func renameCmd(logger log.Logger) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "rename <archive.ff> <old-name> <new-name>",
		Short: "rename a rawfile entry in place",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ff.Open(args[0], ff.Options{Logger: logger})
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.Rename(args[1], args[2]); err != nil {
				return err
			}
			return writeArchive(sess, output, args[0])
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "output path (defaults to overwriting the input)")
	return cmd
}

func replaceCmd(logger log.Logger) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "replace <archive.ff> <entry-name> <content-file>",
		Short: "replace a rawfile entry's content",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ff.Open(args[0], ff.Options{Logger: logger})
			if err != nil {
				return err
			}
			defer sess.Close()

			content, err := os.ReadFile(args[2])
			if err != nil {
				return err
			}
			if err := sess.ReplaceContent(args[1], content, ff.LevelOptimal); err != nil {
				return err
			}
			return writeArchive(sess, output, args[0])
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "output path (defaults to overwriting the input)")
	return cmd
}

func formatCmd() *cobra.Command {
	var minify bool
	cmd := &cobra.Command{
		Use:   "format <source-file>",
		Short: "beautify or minify a rawfile source payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var out []byte
			if minify {
				out = ff.MinifyCode(src)
			} else {
				out = ff.FormatCode(src)
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&minify, "minify", false, "minify instead of beautify")
	return cmd
}

func writeArchive(sess *ff.Session, output, inputPath string) error {
	if output == "" {
		output = inputPath
	}
	archive, err := sess.Archive()
	if err != nil {
		return err
	}
	return os.WriteFile(output, archive, 0o644)
}
