// Binary lspcppgen renders an LSP metaModel JSON document into a single
// C++23 header declaring the equivalent structures, enumerations, type
// aliases, and request/notification traits.
package main

import (
	"flag"
	"os"

	log "github.com/golang/glog"

	"github.com/lspcppgen/lspcppgen/lspgen"
)

var (
	schemaPath = flag.String("schema", "", "Path to the LSP metaModel JSON file to read.")
	outputFile = flag.String("output", "", "The file that the generated C++ header should be written to. Defaults to stdout if unset.")
	namespace  = flag.String("namespace", "", "C++ namespace the generated declarations are wrapped in.")
	supportHdr = flag.String("support_header", "", "#include path of the hand-written support header.")
	generator  = flag.String("generated_by_tag", "", "Tool/version string stamped into the banner comment.")
)

func main() {
	flag.Parse()

	if *schemaPath == "" {
		log.Exitf("lspcppgen: -schema is required")
	}

	schemaJSON, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Exitf("lspcppgen: reading schema %q: %v", *schemaPath, err)
	}

	result, err := lspgen.Generate(schemaJSON, lspgen.Options{
		Namespace:            *namespace,
		SupportHeaderInclude: *supportHdr,
		GeneratedByTag:       *generator,
	})
	if err != nil {
		log.Exitf("lspcppgen: %v", err)
	}

	logDiagnostics(result.Diagnostics)
	log.Infof("lspcppgen: emitted %d structs, %d enums, %d aliases, %d requests, %d notifications",
		result.StructCount, result.EnumCount, result.AliasCount, result.RequestCount, result.NotificationCount)

	if *outputFile == "" {
		os.Stdout.Write(result.Header)
		return
	}
	if err := os.WriteFile(*outputFile, result.Header, 0o644); err != nil {
		log.Exitf("lspcppgen: writing output %q: %v", *outputFile, err)
	}
}

func logDiagnostics(diag *lspgen.Diagnostics) {
	if diag == nil || diag.Empty() {
		return
	}
	for _, msg := range diag.KeywordHits {
		log.Warningf("lspcppgen: keyword escape: %s", msg)
	}
	for _, msg := range diag.BoolDefaultWarnings {
		log.Warningf("lspcppgen: optional bool may default true: %s", msg)
	}
	for _, msg := range diag.UnsafeOverrides {
		log.Warningf("lspcppgen: unsafe property override: %s", msg)
	}
	for _, msg := range diag.MemberCollisions {
		log.Warningf("lspcppgen: member name collision: %s", msg)
	}
	for _, msg := range diag.GraphAnomalies {
		log.Warningf("lspcppgen: dependency graph anomaly: %s", msg)
	}
}
