package cmd

import (
	"fmt"
	"os"

	"pastekit/pkg/config"
	"pastekit/pkg/logging"
	"pastekit/pkg/paste"
	"pastekit/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pasteCmd runs the chunking and packing pipeline.
var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Pack project files into paste-ready output files",
	Long: `Select files under the project root by include/exclude/only/skip glob rules,
wrap each in a self-describing frame (path, line count, chunk position, SHA256),
and pack the frames into paste_NN.txt files under the line budget, plus an index.`,
	RunE: runPaste,
}

func runPaste(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	debug, err := flags.GetBool("debug")
	if err != nil {
		return fmt.Errorf("error reading flags: %w", err)
	}
	logger := rootLogger
	if debug {
		if err := logging.Setup(true, "pastekit", version.Get().Version); err == nil {
			logger = logging.Logger
		}
	}

	configPath, _ := flags.GetString("config")
	doc, info, err := config.Load(configPath, flagOverrides(cmd), logger)
	if err != nil {
		return err
	}
	if debug {
		logger.Debug("Resolved configuration",
			zap.String("globalConfig", info.GlobalConfig),
			zap.String("projectFile", info.ProjectFile),
			zap.Any("provenance", info.Provenance))
	}

	cfg := resolveConfig(doc)
	listOnly, _ := flags.GetBool("list-only")

	result, err := paste.Run(cfg, listOnly, logger)
	if err != nil {
		return err
	}

	if listOnly {
		result.WriteFileList(os.Stdout)
	} else {
		result.WriteSummary(os.Stdout)
	}
	return nil
}

// flagOverrides collects the flags the user actually set into a configuration
// layer, so explicit CLI values win over file values but unset flags do not
// clobber them.
func flagOverrides(cmd *cobra.Command) config.Document {
	flags := cmd.Flags()
	pasteLayer := map[string]any{}

	setString := func(flag, key string) {
		if flags.Changed(flag) {
			v, _ := flags.GetString(flag)
			pasteLayer[key] = v
		}
	}
	setInt := func(flag, key string) {
		if flags.Changed(flag) {
			v, _ := flags.GetInt(flag)
			pasteLayer[key] = v
		}
	}
	setBool := func(flag, key string) {
		if flags.Changed(flag) {
			v, _ := flags.GetBool(flag)
			pasteLayer[key] = v
		}
	}
	setList := func(flag, key string) {
		if flags.Changed(flag) {
			v, _ := flags.GetStringArray(flag)
			pasteLayer[key] = v
		}
	}

	setString("project", "root")
	setString("out", "out_dir")
	setString("blank-lines", "blank_lines")
	setInt("max-lines", "max_lines")
	setInt("target-files", "target_files")
	setInt("soft-overflow", "soft_overflow")
	setInt("split-lines", "split_chunk_lines")
	setBool("allow-binary", "allow_binary")
	setBool("filename-search", "filename_search")
	setBool("single-file", "single_file")
	setBool("split", "allow_split")
	setList("include", "include")
	setList("exclude", "exclude")
	setList("only", "only_globs")
	setList("skip", "skip_globs")

	if len(pasteLayer) == 0 {
		return nil
	}
	return config.Document{"paste": pasteLayer}
}

// resolveConfig converts the merged configuration document into the engine's
// typed record. Field defaults here mirror the built-in defaults layer.
func resolveConfig(doc config.Document) paste.Config {
	p := doc.Section("paste")
	return paste.Config{
		ProjectRoot:        p.String("root", doc.String("project_root", ".")),
		OutDir:             p.String("out_dir", "paste_out"),
		MaxLines:           p.Int("max_lines", paste.DefaultMaxLines),
		AllowBinary:        p.Bool("allow_binary", false),
		FilenameSearch:     p.Bool("filename_search", false),
		Include:            p.StringList("include"),
		Exclude:            p.StringList("exclude"),
		OnlyGlobs:          p.StringList("only_globs"),
		SkipGlobs:          p.StringList("skip_globs"),
		GlobalExcludeDirs:  doc.StringList("exclude_dirs"),
		GlobalExcludeFiles: doc.StringList("exclude_files"),
		TargetFiles:        p.Int("target_files", 0),
		SoftOverflow:       p.Int("soft_overflow", 0),
		ForceSingleFile:    p.Bool("single_file", false),
		BlankLines:         paste.BlankLinePolicy(p.String("blank_lines", string(paste.BlankKeep))),
		AllowSplit:         p.Bool("allow_split", false),
		SplitChunkLines:    p.Int("split_chunk_lines", 0),
	}
}

func init() {
	pasteCmd.Flags().String("project", "", "Project root to select files from")
	pasteCmd.Flags().String("out", "", "Output directory (relative paths resolve against the project root)")
	pasteCmd.Flags().String("config", "", "Path to a project config file (default .pastekit.json)")
	pasteCmd.Flags().Int("max-lines", 0, "Line budget per output file")
	pasteCmd.Flags().Bool("allow-binary", false, "Include binary files as base64 blocks")
	pasteCmd.Flags().Bool("filename-search", false, "Expand bare file names into any-depth patterns")
	pasteCmd.Flags().StringArray("include", nil, "Include glob pattern (repeatable)")
	pasteCmd.Flags().StringArray("exclude", nil, "Exclude glob pattern (repeatable)")
	pasteCmd.Flags().StringArray("only", nil, "Keep only files matching this pattern (repeatable)")
	pasteCmd.Flags().StringArray("skip", nil, "Skip glob pattern (repeatable)")
	pasteCmd.Flags().Int("target-files", 0, "Desired number of output files (0 = use line budget)")
	pasteCmd.Flags().Int("soft-overflow", 0, "Lines a bucket may exceed the capacity by")
	pasteCmd.Flags().Bool("single-file", false, "Pack everything into one output file")
	pasteCmd.Flags().String("blank-lines", "", "Blank-line policy: keep, collapse, or drop")
	pasteCmd.Flags().Bool("split", false, "Split oversized files into line-aligned chunks")
	pasteCmd.Flags().Int("split-lines", 0, "Maximum lines per chunk when splitting")
	pasteCmd.Flags().Bool("list-only", false, "List the selected files without writing output")
	pasteCmd.Flags().Bool("debug", false, "Enable debug logging")

	RootCmd.AddCommand(pasteCmd)
}
