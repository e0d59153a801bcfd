// RoomScatter — Procedural Prop Placement for Tile-Based Floors
//
// A headless tool that scatters object footprints across room grids
// using weighted wall/cluster/spread scoring, then reports and exports
// the resulting layout.
//
// Build:
//   go build -o roomscatter ./cmd/roomscatter
//
// Examples:
//   roomscatter -plan tavern.yaml -pdf tavern.pdf
//   roomscatter -props props.csv -room 16x12 -seed 9 -xlsx schedule.xlsx
//   roomscatter -room "Hall 16x12" -presets "Table x4, Brazier x2"
//   roomscatter -from-template "Tavern Night" -out tonight.json
//   roomscatter -plan keep.json -blockout keep.dxf -compare

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"roomscatter/internal/engine"
	"roomscatter/internal/export"
	"roomscatter/internal/importer"
	"roomscatter/internal/model"
	"roomscatter/internal/project"
)

// options collects the parsed command line.
type options struct {
	planPath      string
	propsPath     string
	blockoutPath  string
	roomSize      string
	presets       string
	fromTemplate  string
	saveTemplate  string
	importCatalog string
	exportBackup  string
	importBackup  string
	seed          int64
	seedSet       bool
	profile       string
	compare       bool
	pdfPath       string
	manifestPath  string
	xlsxPath      string
	outPath       string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("roomscatter: ")

	opts, listProfiles, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if listProfiles {
		printProfiles()
		return
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

// parseOptions parses the command line into options. It tracks whether -seed
// was given at all, since 0 is a valid seed and not a sentinel.
func parseOptions(args []string) (options, bool, error) {
	var opts options
	fs := flag.NewFlagSet("roomscatter", flag.ContinueOnError)
	fs.StringVar(&opts.planPath, "plan", "", "plan file to load (.json, .yaml, .yml)")
	fs.StringVar(&opts.propsPath, "props", "", "CSV or XLSX prop list merged into the plan")
	fs.StringVar(&opts.blockoutPath, "blockout", "", "DXF drawing merged into the first room's blocked zones")
	fs.StringVar(&opts.roomSize, "room", "", "ad-hoc room as WxD tiles (e.g. 16x12) or a catalog room preset name")
	fs.StringVar(&opts.presets, "presets", "", "catalog prop presets merged into the plan, e.g. \"Crate x4, Table\"")
	fs.StringVar(&opts.fromTemplate, "from-template", "", "start the plan from a saved template")
	fs.StringVar(&opts.saveTemplate, "save-template", "", "save the assembled plan as a reusable template")
	fs.StringVar(&opts.importCatalog, "import-catalog", "", "merge a catalog JSON file into the saved catalog")
	fs.StringVar(&opts.exportBackup, "export-backup", "", "export config, custom profiles, and templates to this path and exit")
	fs.StringVar(&opts.importBackup, "import-backup", "", "restore config, custom profiles, and templates from a backup file and exit")
	fs.Int64Var(&opts.seed, "seed", 0, "seed override (omit to keep the plan's seed)")
	fs.StringVar(&opts.profile, "profile", "", "default weight profile override")
	fs.BoolVar(&opts.compare, "compare", false, "compare the plan across built-in profiles and an alternate seed")
	fs.StringVar(&opts.pdfPath, "pdf", "", "write a floor plan PDF to this path")
	fs.StringVar(&opts.manifestPath, "manifest", "", "write a QR placement manifest PDF to this path")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "write a placement schedule workbook to this path")
	fs.StringVar(&opts.outPath, "out", "", "save the solved plan to this path (.json or .yaml)")
	listProfiles := fs.Bool("profiles", false, "list available weight profiles and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, false, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	return opts, *listProfiles, nil
}

func run(opts options) error {
	if opts.exportBackup != "" {
		return runExportBackup(opts.exportBackup)
	}
	if opts.importBackup != "" {
		return runImportBackup(opts.importBackup)
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("cannot load app config: %w", err)
	}
	customProfiles, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		return fmt.Errorf("cannot load custom profiles: %w", err)
	}

	if opts.importCatalog != "" {
		if err := runImportCatalog(opts.importCatalog); err != nil {
			return err
		}
		if opts.planPath == "" && opts.roomSize == "" && opts.fromTemplate == "" && opts.propsPath == "" {
			return nil
		}
	}

	plan, err := buildPlan(opts, config)
	if err != nil {
		return err
	}

	if opts.propsPath != "" {
		if err := mergeProps(&plan, opts.propsPath); err != nil {
			return err
		}
	}
	if opts.presets != "" {
		if err := mergePresets(&plan, opts.presets); err != nil {
			return err
		}
	}
	if opts.blockoutPath != "" {
		if err := mergeBlockouts(&plan, opts.blockoutPath); err != nil {
			return err
		}
	}

	if opts.seedSet {
		plan.Settings.Seed = opts.seed
	}
	if opts.profile != "" {
		if !profileExists(opts.profile, customProfiles) {
			return fmt.Errorf("unknown profile %q (available: %s)", opts.profile, strings.Join(model.ProfileNames(), ", "))
		}
		plan.Settings.DefaultProfile = opts.profile
	}

	if len(plan.Rooms) == 0 {
		return fmt.Errorf("plan has no rooms; give -plan, -room, or -from-template")
	}
	if len(plan.Props) == 0 {
		return fmt.Errorf("plan has no props; give -plan, -props, or -presets")
	}

	if opts.saveTemplate != "" {
		if err := saveAsTemplate(plan, opts.saveTemplate); err != nil {
			return err
		}
	}

	if opts.compare {
		return runCompare(plan, customProfiles)
	}

	result, err := engine.ScatterWithProfiles(plan, customProfiles)
	if err != nil {
		return err
	}
	plan.Result = &result

	printSummary(plan, result)

	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, plan, result); err != nil {
			return fmt.Errorf("pdf export failed: %w", err)
		}
		fmt.Printf("Wrote floor plan to %s\n", opts.pdfPath)
	}
	if opts.manifestPath != "" {
		if err := export.ExportManifest(opts.manifestPath, plan, result); err != nil {
			return fmt.Errorf("manifest export failed: %w", err)
		}
		fmt.Printf("Wrote placement manifest to %s\n", opts.manifestPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportXLSX(opts.xlsxPath, plan, result); err != nil {
			return fmt.Errorf("xlsx export failed: %w", err)
		}
		fmt.Printf("Wrote placement schedule to %s\n", opts.xlsxPath)
	}
	if opts.outPath != "" {
		if err := project.SavePlan(opts.outPath, plan); err != nil {
			return fmt.Errorf("cannot save plan: %w", err)
		}
		fmt.Printf("Saved solved plan to %s\n", opts.outPath)
		rememberPlan(&config, opts.outPath)
	}

	if opts.planPath != "" {
		rememberPlan(&config, opts.planPath)
	}
	if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
		log.Printf("warning: cannot save app config: %v", err)
	}

	return nil
}

// buildPlan loads a plan from disk, instantiates a saved template, or
// constructs an ad-hoc plan from the -room flag and the saved app defaults.
func buildPlan(opts options, config model.AppConfig) (model.Plan, error) {
	if opts.planPath != "" {
		plan, err := project.LoadPlan(opts.planPath)
		if err != nil {
			return model.Plan{}, fmt.Errorf("cannot load plan: %w", err)
		}
		return plan, nil
	}

	if opts.fromTemplate != "" {
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			return model.Plan{}, fmt.Errorf("cannot load templates: %w", err)
		}
		tmpl := store.FindByName(opts.fromTemplate)
		if tmpl == nil {
			return model.Plan{}, fmt.Errorf("unknown template %q (available: %s)", opts.fromTemplate, strings.Join(store.Names(), ", "))
		}
		return tmpl.ToPlan(tmpl.Name), nil
	}

	plan := model.NewPlan()
	config.ApplyToSettings(&plan.Settings)

	if opts.roomSize != "" {
		room, err := resolveRoom(opts.roomSize, config)
		if err != nil {
			return model.Plan{}, err
		}
		plan.Rooms = append(plan.Rooms, room)
		plan.Name = room.Label
	}

	return plan, nil
}

// resolveRoom interprets the -room argument as either WxD tile dimensions or
// the name of a catalog room preset.
func resolveRoom(s string, config model.AppConfig) (model.RoomSpec, error) {
	if width, depth, err := parseRoomSize(s); err == nil {
		return model.NewRoomSpec(fmt.Sprintf("Room %dx%d", width, depth), width, depth, config.DefaultTileScale), nil
	}

	catalog, _, err := project.LoadOrCreateCatalog()
	if err != nil {
		return model.RoomSpec{}, fmt.Errorf("cannot load catalog: %w", err)
	}
	preset := catalog.FindRoomByName(s)
	if preset == nil {
		return model.RoomSpec{}, fmt.Errorf("-room %q is neither WxD (e.g. 16x12) nor a room preset (available: %s)",
			s, strings.Join(catalog.RoomNames(), ", "))
	}
	return preset.ToRoomSpec(), nil
}

// parseRoomSize parses "WxD" into tile dimensions.
func parseRoomSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid room size %q, want WxD (e.g. 16x12)", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid room width in %q", s)
	}
	depth, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || depth <= 0 {
		return 0, 0, fmt.Errorf("invalid room depth in %q", s)
	}
	return width, depth, nil
}

// mergeProps imports a CSV/XLSX prop list and appends it to the plan.
func mergeProps(plan *model.Plan, path string) error {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		result = importer.ImportExcel(path)
	default:
		result = importer.ImportCSV(path)
	}

	for _, w := range result.Warnings {
		log.Printf("props: %s", w)
	}
	for _, e := range result.Errors {
		log.Printf("props: error: %s", e)
	}
	if len(result.Props) == 0 {
		return fmt.Errorf("no usable props in %s", path)
	}

	plan.Props = append(plan.Props, result.Props...)
	fmt.Printf("Imported %d props from %s\n", len(result.Props), path)
	return nil
}

// mergePresets expands a comma-separated list of catalog prop presets, each
// optionally with a quantity ("Crate x4"), into plan props.
func mergePresets(plan *model.Plan, spec string) error {
	catalog, _, err := project.LoadOrCreateCatalog()
	if err != nil {
		return fmt.Errorf("cannot load catalog: %w", err)
	}

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, qty, err := parsePresetSpec(entry)
		if err != nil {
			return err
		}
		preset := catalog.FindPropByName(name)
		if preset == nil {
			return fmt.Errorf("unknown prop preset %q (available: %s)", name, strings.Join(catalog.PropNames(), ", "))
		}
		plan.Props = append(plan.Props, preset.ToProp(qty))
	}
	return nil
}

// parsePresetSpec splits "Name xN" into a preset name and quantity; a bare
// name means quantity one.
func parsePresetSpec(entry string) (string, int, error) {
	if i := strings.LastIndex(entry, " x"); i > 0 {
		if qty, err := strconv.Atoi(strings.TrimSpace(entry[i+2:])); err == nil {
			if qty <= 0 {
				return "", 0, fmt.Errorf("preset %q: quantity must be positive", entry)
			}
			return strings.TrimSpace(entry[:i]), qty, nil
		}
	}
	return entry, 1, nil
}

// mergeBlockouts imports a DXF drawing as blocked zones on the first room.
func mergeBlockouts(plan *model.Plan, path string) error {
	if len(plan.Rooms) == 0 {
		return fmt.Errorf("-blockout needs a room; give -plan or -room first")
	}
	room := &plan.Rooms[0]

	result := importer.ImportBlockouts(path, room.TileScale)
	for _, w := range result.Warnings {
		log.Printf("blockout: %s", w)
	}
	for _, e := range result.Errors {
		log.Printf("blockout: error: %s", e)
	}
	if len(result.Zones) == 0 {
		return fmt.Errorf("no usable blockout shapes in %s", path)
	}

	room.Blocked = append(room.Blocked, result.Zones...)
	fmt.Printf("Imported %d blocked zones into %q from %s\n", len(result.Zones), room.Label, path)
	return nil
}

// profileExists reports whether a name resolves to a built-in or custom
// weight profile.
func profileExists(name string, custom []model.WeightProfile) bool {
	if _, ok := model.FindWeightProfile(name); ok {
		return true
	}
	for _, p := range custom {
		if p.Name == name {
			return true
		}
	}
	return false
}

// saveAsTemplate stores the plan's rooms, props, and settings as a named
// template, replacing an existing template of the same name.
func saveAsTemplate(plan model.Plan, name string) error {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return fmt.Errorf("cannot load templates: %w", err)
	}
	if existing := store.FindByName(name); existing != nil {
		store.Remove(existing.ID)
	}
	store.Add(model.NewPlanTemplate(name, "", plan.Rooms, plan.Props, plan.Settings))
	if err := project.SaveDefaultTemplates(store); err != nil {
		return fmt.Errorf("cannot save templates: %w", err)
	}
	fmt.Printf("Saved template %q\n", name)
	return nil
}

// runImportCatalog merges a catalog file into the saved catalog.
func runImportCatalog(path string) error {
	catalog, catalogPath, err := project.LoadOrCreateCatalog()
	if err != nil {
		return fmt.Errorf("cannot load catalog: %w", err)
	}
	merged, err := project.ImportCatalog(path, catalog)
	if err != nil {
		return fmt.Errorf("cannot import catalog: %w", err)
	}
	if err := project.SaveCatalog(catalogPath, merged); err != nil {
		return fmt.Errorf("cannot save catalog: %w", err)
	}
	fmt.Printf("Merged catalog from %s: %d prop presets, %d room presets\n",
		path, len(merged.Props), len(merged.Rooms))
	return nil
}

// runExportBackup writes the app config, custom profiles, and templates to a
// single backup file.
func runExportBackup(path string) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("cannot load app config: %w", err)
	}
	profiles, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		return fmt.Errorf("cannot load custom profiles: %w", err)
	}
	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		return fmt.Errorf("cannot load templates: %w", err)
	}

	if err := project.ExportAllData(path, config, profiles, templates); err != nil {
		return err
	}
	fmt.Printf("Exported backup to %s\n", path)
	return nil
}

// runImportBackup restores config, custom profiles, and templates from a
// backup file.
func runImportBackup(path string) error {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}

	if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
		return fmt.Errorf("cannot save app config: %w", err)
	}
	if err := project.SaveCustomProfiles(project.DefaultProfilesPath(), backup.Profiles); err != nil {
		return fmt.Errorf("cannot save custom profiles: %w", err)
	}
	if err := project.SaveDefaultTemplates(backup.Templates); err != nil {
		return fmt.Errorf("cannot save templates: %w", err)
	}
	fmt.Printf("Restored backup from %s (created %s)\n", path, backup.CreatedAt)
	return nil
}

// runCompare scatters the plan under each default scenario and prints a
// side-by-side table.
func runCompare(plan model.Plan, custom []model.WeightProfile) error {
	scenarios := engine.BuildDefaultScenarios(plan.Settings)
	results, err := engine.CompareScenariosWithProfiles(scenarios, plan, custom)
	if err != nil {
		return err
	}

	fmt.Printf("Comparing %q across %d scenarios:\n\n", plan.Name, len(results))
	fmt.Printf("  %-24s %8s %10s %10s\n", "Scenario", "Placed", "Unplaced", "Density")
	for _, r := range results {
		fmt.Printf("  %-24s %8d %10d %9.1f%%\n", r.Scenario.Name, r.Placed, r.UnplacedCount, r.Density)
	}
	return nil
}

// printSummary writes the scatter outcome to stdout.
func printSummary(plan model.Plan, result model.ScatterResult) {
	fmt.Printf("Plan %q: placed %d props across %d rooms (%.1f%% density, seed %d)\n",
		plan.Name, result.PlacedCount(), len(result.Rooms), result.TotalDensity(), plan.Settings.Seed)

	for _, room := range result.Rooms {
		fmt.Printf("\n  %s (%dx%d): %d props, %.1f%% density\n",
			room.Room.Label, room.Room.Width, room.Room.Depth, len(room.Placements), room.Density())
		for _, p := range room.Placements {
			fmt.Printf("    %-16s anchor (%d,%d)  world (%.2f, %.2f)  score %.2f\n",
				p.Prop.Label, p.Anchor.X, p.Anchor.Z, p.World.X, p.World.Z, p.Score)
		}
		if len(room.FreeRegions) > 0 {
			largest := room.FreeRegions[0]
			fmt.Printf("    largest free region: %dx%d at (%d,%d)\n",
				largest.Width, largest.Depth, largest.X, largest.Z)
		}
	}

	if len(result.Unplaced) > 0 {
		fmt.Printf("\n  Unplaced (%d):\n", len(result.Unplaced))
		for _, prop := range result.Unplaced {
			fmt.Printf("    %-16s %g x %g tiles\n", prop.Label, prop.Footprint.Width, prop.Footprint.Depth)
		}
	}
}

// printProfiles lists the built-in and custom weight profiles.
func printProfiles() {
	fmt.Println("Built-in profiles:")
	for _, p := range model.WeightProfiles {
		fmt.Printf("  %-12s %s\n", p.Name, p.Description)
		fmt.Printf("               wall %.2f / cluster %.2f / spread %.2f / jitter %.2f\n",
			p.Weights.WallBonus, p.Weights.ClusterBonus, p.Weights.SpreadBonus, p.Weights.Jitter)
	}

	custom, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load custom profiles: %v\n", err)
		return
	}
	if len(custom) > 0 {
		fmt.Println("\nCustom profiles:")
		for _, p := range custom {
			fmt.Printf("  %-12s %s\n", p.Name, p.Description)
		}
	}
}

// rememberPlan prepends a path to the recent plan list, deduplicated and
// capped at ten entries.
func rememberPlan(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range config.RecentPlans {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	config.RecentPlans = recent
}
