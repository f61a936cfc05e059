package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	shell "github.com/codeskyblue/go-sh"
)

// generatorCommand splits the configured generator and appends the action
// and docs directory, e.g. "npx vitepress build docs".
func generatorCommand(opts Options, action string) (string, []interface{}, error) {
	fields := strings.Fields(opts.Generator)
	if len(fields) == 0 {
		return "", nil, errors.New("no site generator configured")
	}
	var args []interface{}
	for _, f := range fields[1:] {
		args = append(args, f)
	}
	args = append(args, action, opts.DocsDir)
	return fields[0], args, nil
}

// RunGenerator hands the written configuration over to the site generator.
func RunGenerator(opts Options, action string, stdout, stderr io.Writer) error {
	name, args, err := generatorCommand(opts, action)
	if err != nil {
		return err
	}

	sh := shell.NewSession()
	sh.SetDir(opts.ProjectDir)
	sh.ShowCMD = true
	sh.Stdout = stdout
	sh.Stderr = stderr

	err = sh.Command(name, args...).Run()
	if err != nil {
		return fmt.Errorf("%s %s: %w", opts.Generator, action, err)
	}
	return nil
}
