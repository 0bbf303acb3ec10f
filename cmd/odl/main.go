// Package main provides the ODL command line tool for managing
// image classifier checkpoints.
package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/scottkang123/online-deep-learning/backend/cpu"
	"github.com/scottkang123/online-deep-learning/classifier"
	"github.com/scottkang123/online-deep-learning/internal/serialization"
	"github.com/scottkang123/online-deep-learning/loader"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "models":
		err = runModels()
	case "size":
		err = runSize(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "version":
		fmt.Printf("odl %s\n", version)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "odl: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "odl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("ODL - Online Deep Learning %s\n\n", version)
	fmt.Println("Usage: odl <command> [arguments]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  models                          List registered model types")
	fmt.Println("  size <name>                     Show parameter count and size of a model")
	fmt.Println("  init <name> [dir]               Save a freshly initialized checkpoint")
	fmt.Println("  inspect <file>                  Show the contents of a checkpoint file")
	fmt.Println("  export <name> <out> [dir]       Export a checkpoint to SafeTensors")
	fmt.Println("  import <name> <in> [dir]        Import SafeTensors weights as a checkpoint")
	fmt.Println("  version                         Show version")
}

// registryNames returns the registered model names in a stable order.
func registryNames() []string {
	names := make([]string, 0, len(classifier.ModelFactory))
	for name := range classifier.ModelFactory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runModels() error {
	backend := cpu.New()
	fmt.Printf("%-20s %12s %10s\n", "NAME", "PARAMS", "SIZE")
	for _, name := range registryNames() {
		model := classifier.ModelFactory[name](backend, classifier.Config{})
		params := 0
		for _, p := range model.Parameters() {
			params += p.Tensor().NumElements()
		}
		fmt.Printf("%-20s %12d %7.2f MB\n", name, params, classifier.CalculateModelSizeMB(model))
	}
	return nil
}

func runSize(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: odl size <name>")
	}
	name := args[0]
	construct, ok := classifier.ModelFactory[name]
	if !ok {
		return fmt.Errorf("%w: %q", classifier.ErrUnknownModel, name)
	}

	model := construct(cpu.New(), classifier.Config{})
	params := 0
	for _, p := range model.Parameters() {
		params += p.Tensor().NumElements()
	}
	sizeMB := classifier.CalculateModelSizeMB(model)

	fmt.Printf("Model:      %s\n", name)
	fmt.Printf("Parameters: %d\n", params)
	fmt.Printf("Size:       %.2f MB (budget %.0f MB)\n", sizeMB, classifier.MaxModelSizeMB)
	return nil
}

func runInit(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: odl init <name> [dir]")
	}
	name := args[0]
	if len(args) == 2 {
		classifier.ModelDir = args[1]
	}

	model, err := classifier.LoadModel(cpu.New(), name, false, classifier.Config{})
	if err != nil {
		return err
	}
	if err := classifier.SaveModel(model); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", classifier.CheckpointPath(name))
	return nil
}

func runInspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: odl inspect <file>")
	}

	reader, err := serialization.NewReader(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	header := reader.Header()
	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Format:     ODLC v%d\n", header.FormatVersion)
	fmt.Printf("Framework:  %s\n", header.FrameworkVersion)
	fmt.Printf("Model type: %s\n", header.ModelType)
	fmt.Printf("Created:    %s\n", header.CreatedAt.Format(time.RFC3339))
	if len(header.Metadata) > 0 {
		fmt.Println("Metadata:")
		keys := make([]string, 0, len(header.Metadata))
		for k := range header.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %s\n", k, header.Metadata[k])
		}
	}

	fmt.Printf("\n%-40s %-10s %-16s %10s\n", "TENSOR", "DTYPE", "SHAPE", "BYTES")
	var totalBytes int64
	for _, meta := range header.Tensors {
		fmt.Printf("%-40s %-10s %-16v %10d\n", meta.Name, meta.DType, meta.Shape, meta.Size)
		totalBytes += meta.Size
	}
	fmt.Printf("\n%d tensors, %.2f MB\n", len(header.Tensors), float64(totalBytes)/(1024*1024))
	return nil
}

func runExport(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: odl export <name> <out> [dir]")
	}
	name, out := args[0], args[1]
	if len(args) == 3 {
		classifier.ModelDir = args[2]
	}

	model, err := classifier.LoadModel(cpu.New(), name, true, classifier.Config{})
	if err != nil {
		return err
	}
	metadata := map[string]string{"model_type": name}
	if err := serialization.WriteSafeTensors(out, model.StateDict(), metadata); err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", classifier.CheckpointPath(name), out)
	return nil
}

func runImport(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: odl import <name> <in> [dir]")
	}
	name, in := args[0], args[1]
	if len(args) == 3 {
		classifier.ModelDir = args[2]
	}
	construct, ok := classifier.ModelFactory[name]
	if !ok {
		return fmt.Errorf("%w: %q", classifier.ErrUnknownModel, name)
	}

	backend := cpu.New()
	reader, err := loader.Open(in)
	if err != nil {
		return err
	}
	defer reader.Close()

	stateDict, err := reader.LoadStateDict(backend)
	if err != nil {
		return err
	}

	model := construct(backend, classifier.Config{})
	if err := model.LoadStateDict(stateDict); err != nil {
		return fmt.Errorf("%s does not match model %q: %w", in, name, err)
	}
	if err := classifier.SaveModel(model); err != nil {
		return err
	}
	fmt.Printf("Imported %s as %s\n", in, classifier.CheckpointPath(name))
	return nil
}
