// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"uberjar-cli/internal/assemble"
	"uberjar-cli/internal/config"
	"uberjar-cli/internal/jartool"
	"uberjar-cli/internal/merge"
)

var (
	// buildScripts creates platform-specific standalone launcher scripts
	buildScripts bool
	// buildJarTool overrides the archiver command from the config
	buildJarTool string
	// buildJava8 additionally emits launchers without the Java 9 module flags
	buildJava8 bool
	// buildNoSWT skips bundling platform-specific SWT fragments
	buildNoSWT bool
	// buildIgnoreConflicts prevents failing when merges conflict
	buildIgnoreConflicts bool
)

// buildCmd runs the whole pipeline: merge the update site, bundle the
// jar(s), optionally emit launcher scripts.
var buildCmd = &cobra.Command{
	Use:   "build <source> <name> <main-class> <target> <build-dir>",
	Short: "Merge an update site into an executable jar",
	Long: `Merge the plugin jars of a self-contained update site into one
executable uber jar.

Arguments:
  source      directory containing all plugins that should be bundled
  name        name of the generated executable jar/scripts
  main-class  main class recorded in the generated jar
  target      directory that receives the jar(s) and scripts
  build-dir   directory for intermediate results (recreated every run)

Jars are processed in sorted name order; jars found on a bundle
classpath are appended to the work list as they are discovered. When a
KLighD plugin is present, platform-specific SWT fragments are kept
apart and one jar per platform (linux, win, osx) is produced instead
of one.

Examples:
  uberjar build ./site mytool org.example.cli.Main ./dist ./build
  uberjar build --scripts --java8 ./site mytool org.example.cli.Main ./dist ./build
  uberjar build --jar-tool /usr/lib/jvm/java-11-openjdk-amd64/bin/jar ./site mytool org.example.cli.Main ./dist ./build`,
	Args: cobra.ExactArgs(5),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildScripts, "scripts", "s", false, "create platform specific standalone scripts of the jar")
	buildCmd.Flags().StringVar(&buildJarTool, "jar-tool", "", "override the jar command, e.g. /usr/lib/jvm/java-11-openjdk-amd64/bin/jar")
	buildCmd.Flags().BoolVar(&buildJava8, "java8", false, "additionally emit Java 8 compatible launcher scripts")
	buildCmd.Flags().BoolVar(&buildNoSWT, "no-swt", false, "skip bundling platform specific SWT dependencies")
	buildCmd.Flags().BoolVar(&buildIgnoreConflicts, "ignore-conflicts", false, "do not fail the build on merge conflicts")
}

func runBuild(cmd *cobra.Command, args []string) error {
	sourceDir, name, mainClass := args[0], args[1], args[2]
	targetArg, buildArg := args[3], args[4]

	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return fatal(err)
	}

	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return fatal(fmt.Errorf("%s is not a directory or does not exist", sourceDir))
	}

	targetDir, err := filepath.Abs(targetArg)
	if err != nil {
		return fatal(err)
	}
	buildDir, err := filepath.Abs(buildArg)
	if err != nil {
		return fatal(err)
	}
	extractDir := filepath.Join(buildDir, "extracted")
	mergedDir := filepath.Join(buildDir, "merged")

	// The scratch directories are fully recreated on every run.
	for _, dir := range []string{extractDir, mergedDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fatal(err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fatal(err)
		}
	}

	rules, err := merge.DefaultRules().Extend(merge.ExtraPatterns{
		IgnoredJars:  cfg.Patterns.IgnoredJars,
		IgnoredFiles: cfg.Patterns.IgnoredFiles,
		AppendMerge:  cfg.Patterns.AppendMerge,
		IgnoreMerge:  cfg.Patterns.IgnoreMerge,
	})
	if err != nil {
		return fatal(err)
	}

	jarCommand := buildJarTool
	if jarCommand == "" {
		jarCommand = cfg.JarTool
	}
	tool := jartool.New(jarCommand)
	tool.Stderr = os.Stderr

	fmt.Println(TitleStyle.Render("Creating uber jar"))

	result, err := merge.Run(cmd.Context(), merge.Options{
		SourceDir:  sourceDir,
		ExtractDir: extractDir,
		MergedDir:  mergedDir,
		Extractor:  tool,
		Rules:      rules,
		Logger:     logger,
	})
	if err != nil {
		return fatal(err)
	}

	if len(result.Conflicts) > 0 {
		for _, c := range result.Conflicts {
			fmt.Fprintf(os.Stderr, "%s could not merge %s: conflicting file %s\n",
				ErrorStyle.Render("conflict:"), c.Jar, PathStyle.Render(c.Path))
		}
		if !buildIgnoreConflicts {
			return fatal(fmt.Errorf("stopping build due to %d merge conflict(s)", len(result.Conflicts)))
		}
		logger.Warn("continuing despite merge conflicts", "conflicts", len(result.Conflicts))
	}

	artifacts, err := assemble.Bundle(cmd.Context(), assemble.Options{
		TargetDir:      targetDir,
		Name:           name,
		MainClass:      mainClass,
		MergedDir:      mergedDir,
		Archiver:       tool,
		Platforms:      result.Platforms,
		SplitPlatforms: result.UIHandling && !buildNoSWT,
		Logger:         logger,
	})
	if err != nil {
		return fatal(err)
	}

	if buildScripts {
		fmt.Println(TitleStyle.Render("Creating standalone scripts"))
		err := assemble.WriteScripts(artifacts, assemble.ScriptOptions{
			TargetDir:   targetDir,
			Name:        name,
			LoaderClass: cfg.Launcher.LoaderClass,
			HeapSize:    cfg.Launcher.HeapSize,
			Java8:       buildJava8,
			Logger:      logger,
		})
		if err != nil {
			return fatal(err)
		}
	}

	printBuildSummary(result, artifacts)
	return nil
}

func printBuildSummary(result *merge.Result, artifacts *assemble.Artifacts) {
	fmt.Println()
	fmt.Printf("%s Merged %d plugin jar(s)\n", successIcon, len(result.Processed))
	if artifacts.Base != "" {
		fmt.Printf("%s Jar: %s\n", infoIcon, PathStyle.Render(artifacts.Base))
		return
	}
	for _, platform := range merge.Platforms() {
		if jar, ok := artifacts.PerPlatform[platform]; ok {
			fmt.Printf("%s Jar (%s): %s\n", infoIcon, platform, PathStyle.Render(jar))
		}
	}
}
