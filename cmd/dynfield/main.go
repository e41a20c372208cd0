package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	dynfield "github.com/asaCurry/dynfield"
	"github.com/asaCurry/dynfield/schema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "normalize":
		normalizeCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `dynfield CLI

Usage:
  dynfield normalize -i fields.(json|yaml)            rewrite a stored field collection in canonical form
  dynfield validate  -fields fields.json -record r.json   validate a record payload against a field file
  dynfield schema    -fields fields.json              emit the JSON Schema for a field file

Field files may be JSON ({"fields":[...]} or the legacy bare array) or YAML.`)
}

func normalizeCmd(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	var in string
	fs.StringVar(&in, "i", "", "input field file (json or yaml)")
	_ = fs.Parse(args)
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}
	fields, rep := loadFields(in)
	warnReport(in, rep)
	out, err := dynfield.EncodeFields(fields)
	if err != nil {
		fatal(err)
	}
	fmt.Println(out)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var fieldsPath, recordPath string
	fs.StringVar(&fieldsPath, "fields", "", "field file (json or yaml)")
	fs.StringVar(&recordPath, "record", "", "record payload JSON")
	_ = fs.Parse(args)
	if fieldsPath == "" || recordPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	fields, rep := loadFields(fieldsPath)
	warnReport(fieldsPath, rep)

	b, err := os.ReadFile(recordPath)
	if err != nil {
		fatal(err)
	}
	var values map[string]any
	if err := json.Unmarshal(b, &values); err != nil {
		fatal(fmt.Errorf("%s: %w", recordPath, err))
	}

	s := schema.ForFields(fields)
	if _, err := s.Parse(context.Background(), values); err != nil {
		if iss, ok := dynfield.AsIssues(err); ok {
			enc, _ := json.MarshalIndent(map[string]any{"issues": iss}, "", "  ")
			fmt.Println(string(enc))
			os.Exit(1)
		}
		fatal(err)
	}
	fmt.Println("ok")
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var fieldsPath string
	fs.StringVar(&fieldsPath, "fields", "", "field file (json or yaml)")
	_ = fs.Parse(args)
	if fieldsPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	fields, rep := loadFields(fieldsPath)
	warnReport(fieldsPath, rep)

	js, err := schema.ForFields(fields).JSONSchema()
	if err != nil {
		fatal(err)
	}
	enc, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(enc))
}

// loadFields reads a field file. YAML files are converted to JSON first so
// DecodeFields stays the single entry point for shape handling.
func loadFields(path string) ([]dynfield.DynamicField, dynfield.Report) {
	b, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	raw := string(b)
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		var doc any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			fatal(fmt.Errorf("%s: %w", path, err))
		}
		jb, err := json.Marshal(doc)
		if err != nil {
			fatal(fmt.Errorf("%s: %w", path, err))
		}
		raw = string(jb)
	}
	fields, rep := dynfield.DecodeFields(raw)
	return fields, rep
}

func warnReport(path string, rep dynfield.Report) {
	if rep.Malformed {
		fmt.Fprintf(os.Stderr, "warning: %s: malformed field collection, treating as empty\n", path)
	}
	if rep.LegacyArray {
		fmt.Fprintf(os.Stderr, "warning: %s: legacy bare-array shape, emit canonical form with 'normalize'\n", path)
	}
	if rep.Dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: %s: dropped %d invalid field entries\n", path, rep.Dropped)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
