package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedOptions shapes a generated transcript.
type seedOptions struct {
	Dirs     int
	Files    int
	MaxSize  int64
	MaxDepth int
	Seed     int64
}

func (o seedOptions) validate() error {
	switch {
	case o.Dirs < 0:
		return errors.New("--dirs must not be negative")
	case o.Files < 0:
		return errors.New("--files must not be negative")
	case o.MaxSize < 1:
		return errors.New("--max-size must be at least 1")
	case o.MaxDepth < 1:
		return errors.New("--max-depth must be at least 1")
	}
	return nil
}

// NewSeedCmd creates and returns the seed subcommand for the dutree CLI.
// It generates a random but well-formed transcript for testing.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		opts       seedOptions
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a random transcript for testing",
		Long: `Generate a transcript that explores a randomly shaped directory tree.

Directories are attached to random parents no deeper than --max-depth, and
files are scattered across all directories with sizes between 1 and
--max-size. Every directory is entered, listed and left again, so the
output replays cleanly under --strict. The same --seed always produces the
same transcript.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if !cmd.Flags().Changed("seed") {
				opts.Seed = time.Now().UnixNano()
			}
			if err := opts.validate(); err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outputPath != "" && outputPath != "-" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			total, err := generateTranscript(w, opts)
			if err != nil {
				return fmt.Errorf("writing transcript: %w", err)
			}
			s.log.Info("transcript generated",
				zap.Int64("seed", opts.Seed),
				zap.Int("dirs", opts.Dirs),
				zap.Int("files", opts.Files),
				zap.Int64("total_size", total),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the transcript to this file instead of stdout")
	cmd.Flags().IntVar(&opts.Dirs, "dirs", 20, "Number of directories below the root")
	cmd.Flags().IntVar(&opts.Files, "files", 100, "Number of files")
	cmd.Flags().Int64Var(&opts.MaxSize, "max-size", 300_000, "Largest file size")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 6, "Deepest directory level below the root")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (default: current time)")

	return cmd
}

type seedDir struct {
	name     string
	depth    int
	children []*seedDir
	files    []seedFile
	taken    map[string]bool
}

type seedFile struct {
	name string
	size int64
}

type seeder struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

func newSeeder(seed int64) *seeder {
	var key [32]byte
	for i := range 8 {
		key[i] = byte(seed >> (8 * i))
	}
	src := rand.NewChaCha8(key)
	return &seeder{src: src, rng: rand.New(src)}
}

// name returns a name not yet used in d.
func (s *seeder) name(d *seedDir, suffix string) (string, error) {
	for {
		id, err := uuid.NewRandomFromReader(s.src)
		if err != nil {
			return "", err
		}
		name := id.String()[:8] + suffix
		if !d.taken[name] {
			d.taken[name] = true
			return name, nil
		}
	}
}

// generateTranscript writes a random transcript to w and returns the sum of
// all file sizes in it.
func generateTranscript(w io.Writer, opts seedOptions) (int64, error) {
	s := newSeeder(opts.Seed)
	root := &seedDir{name: "/", taken: map[string]bool{}}

	// parents holds every directory that may still receive subdirectories
	parents := []*seedDir{root}
	all := []*seedDir{root}
	for range opts.Dirs {
		parent := parents[s.rng.IntN(len(parents))]
		name, err := s.name(parent, "")
		if err != nil {
			return 0, err
		}
		d := &seedDir{name: name, depth: parent.depth + 1, taken: map[string]bool{}}
		parent.children = append(parent.children, d)
		all = append(all, d)
		if d.depth < opts.MaxDepth {
			parents = append(parents, d)
		}
	}

	extensions := []string{".txt", ".dat", ".log", ""}
	var total int64
	for range opts.Files {
		d := all[s.rng.IntN(len(all))]
		name, err := s.name(d, extensions[s.rng.IntN(len(extensions))])
		if err != nil {
			return 0, err
		}
		size := s.rng.Int64N(opts.MaxSize) + 1
		d.files = append(d.files, seedFile{name: name, size: size})
		total += size
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "$ cd /")
	writeSeedDir(bw, root)
	return total, bw.Flush()
}

func writeSeedDir(w io.Writer, d *seedDir) {
	fmt.Fprintln(w, "$ ls")
	for _, c := range d.children {
		fmt.Fprintf(w, "dir %s\n", c.name)
	}
	for _, f := range d.files {
		fmt.Fprintf(w, "%d %s\n", f.size, f.name)
	}
	for _, c := range d.children {
		fmt.Fprintf(w, "$ cd %s\n", c.name)
		writeSeedDir(w, c)
		fmt.Fprintln(w, "$ cd ..")
	}
}
