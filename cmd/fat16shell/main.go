package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/dargueta/fat16vol/mbrpart"
	"github.com/dargueta/fat16vol/sectorio"
	"github.com/dargueta/fat16vol/shell"
	"github.com/dargueta/fat16vol/volume"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:      "fat16shell",
		Usage:     "Browse and modify a FAT16 disk image from an interactive shell",
		ArgsUsage: "IMAGE_FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "write the image back to disk when the shell exits",
			},
		},
		Action: runShell,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func runShell(context *cli.Context) error {
	path := context.Args().First()
	if path == "" {
		return cli.Exit("expected an image file path", 1)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	store, err := sectorio.LoadImage(f)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	sector0, err := store.Read(0)
	if err != nil {
		return err
	}
	mbr := mbrpart.Parse(sector0)

	volumes, err := volume.Mount(store, mbr.Partitions)
	if err != nil {
		return fmt.Errorf("mounting partitions: %w", err)
	}
	if len(volumes) == 0 {
		wholeDisk, err := volume.MountWholeDisk(store)
		if err != nil {
			return fmt.Errorf("mounting whole disk: %w", err)
		}
		volumes = map[int]*volume.Volume{0: wholeDisk}
	}

	s := shell.New(store, mbr, volumes)
	runREPL(s, os.Stdin, os.Stdout)

	if context.Bool("write") {
		return writeBack(f, store)
	}
	return nil
}

func runREPL(s *shell.Shell, in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "fat16> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		if line == "quit" || line == "exit" {
			return
		}

		result, err := s.Parse(line)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err.Error())
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
}

func writeBack(f *os.File, store *sectorio.Store) error {
	raw, err := store.DumpImage()
	if err != nil {
		return fmt.Errorf("dumping image: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	if _, err := f.Write(raw); err != nil {
		return err
	}
	return f.Truncate(int64(len(raw)))
}
