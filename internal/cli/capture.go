package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard"
	"github.com/SeamusWaldron/cuboard/internal/capture"
	"github.com/SeamusWaldron/cuboard/internal/config"
	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Record the raw frames of a cube session",
	Long: `Connect to a cube and store every notification and request frame, still
encrypted, in the capture database. Recording stops when the cube
disconnects or on Ctrl+C. Use "cuboard replay" to decode a capture.`,
	RunE: runCapture,
}

var capturesCmd = &cobra.Command{
	Use:   "captures",
	Short: "List recorded captures",
	RunE:  runCaptures,
}

var replayCmd = &cobra.Command{
	Use:   "replay [capture-id]",
	Short: "Decode a recorded capture",
	Long: `Decrypt and decode the frames of a capture, print each message, and type
the recorded moves through the keymap. Without an ID the most recent
capture is replayed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	deleteCapture string
	replayText    bool
)

func init() {
	capturesCmd.Flags().StringVar(&deleteCapture, "delete", "", "Delete the capture with this ID")
	replayCmd.Flags().BoolVar(&replayText, "text", false, "Only print the typed text")
	rootCmd.AddCommand(captureCmd, capturesCmd, replayCmd)
}

func openCaptures() (*capture.DB, error) {
	db, err := capture.Open(conf.CapturePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open capture database: %w", err)
	}
	return db, nil
}

func runCapture(cmd *cobra.Command, args []string) error {
	db, err := openCaptures()
	if err != nil {
		return err
	}
	defer db.Close()

	gan, err := connectCube(cmd.Context())
	if err != nil {
		return err
	}
	defer gan.Close()

	dev := gan.Device()
	captures := capture.NewCaptureRepository(db)
	id, err := captures.Create(dev.Name, dev.Address, dev.Identifier())
	if err != nil {
		return err
	}

	rec := capture.NewRecorder(capture.NewFrameRepository(db), id)
	record := func(src capture.Source) func([]byte) {
		return func(raw []byte) {
			if err := rec.Record(src, raw); err != nil {
				logger.Error("failed to record frame", zap.String("source", string(src)), zap.Error(err))
			}
		}
	}
	gan.OnFrame(record(capture.SourceNotify))
	gan.OnRequest(record(capture.SourceWrite))

	// The connect-time state request was sent before recording started;
	// ask again so the capture can seed the move counter.
	if err := gan.RequestCubeState(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Recording capture %s. Press Ctrl+C to stop.\n", id)
	err = drain(cmd, gan)

	gan.OnFrame(nil)
	gan.OnRequest(nil)
	if endErr := captures.End(id); endErr != nil {
		return endErr
	}
	if state, stateErr := config.NewDefaultStateFile(); stateErr == nil {
		if err := state.SetLastCapture(id); err != nil {
			logger.Warn("failed to save last capture", zap.Error(err))
		}
	}

	fmt.Fprintf(os.Stderr, "Recorded %d frames.\n", rec.Count())
	return err
}

// drain consumes messages until the cube disconnects or the command is
// interrupted.
func drain(cmd *cobra.Command, gan *cuboard.GanCube) error {
	ctx := cmd.Context()
	msgs := gan.Messages()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if _, ok := msg.(protocol.Disconnect); ok {
				fmt.Fprintln(os.Stderr, "Cube disconnected.")
				return nil
			}
		}
	}
}

func runCaptures(cmd *cobra.Command, args []string) error {
	db, err := openCaptures()
	if err != nil {
		return err
	}
	defer db.Close()

	captures := capture.NewCaptureRepository(db)
	if deleteCapture != "" {
		if err := captures.Delete(deleteCapture); err != nil {
			return err
		}
		fmt.Printf("Deleted capture %s\n", deleteCapture)
		return nil
	}

	list, err := captures.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No captures recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-16s  %-20s  %8s  %s\n", "ID", "DEVICE", "STARTED", "FRAMES", "DURATION")
	for _, c := range list {
		fmt.Printf("%-36s  %-16s  %-20s  %8d  %s\n",
			c.CaptureID, c.DeviceName, c.StartedAt.Local().Format("2006-01-02 15:04:05"), c.Frames, captureDuration(c))
	}
	return nil
}

func captureDuration(c capture.Capture) string {
	if c.EndedAt == nil {
		return "-"
	}
	return c.EndedAt.Sub(c.StartedAt).Round(time.Second).String()
}

func runReplay(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	} else if state, err := config.NewDefaultStateFile(); err == nil {
		id = state.LastCaptureID()
	}
	if id == "" {
		return errors.New("no capture ID given and no previous capture recorded")
	}

	db, err := openCaptures()
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := capture.NewCaptureRepository(db).Get(id)
	if err != nil {
		return fmt.Errorf("capture %s: %w", id, err)
	}
	frames, err := capture.NewFrameRepository(db).GetByCapture(id)
	if err != nil {
		return err
	}
	decoded, err := capture.Decode(c, frames, logger)
	if err != nil {
		return fmt.Errorf("capture %s: %w", id, err)
	}

	opts, err := sessionOptions()
	if err != nil {
		return err
	}
	text, err := replayFrames(decoded, cuboard.NewSession(opts...), !replayText)
	if err != nil {
		return err
	}
	if replayText {
		fmt.Print(text)
		return nil
	}
	fmt.Printf("\nTyped: %q\n", text)
	return nil
}

// replayFrames feeds decoded frames through s and returns every line
// submitted plus the text still on the prompt. With verbose set each frame
// is printed as it is replayed.
func replayFrames(decoded []capture.Decoded, s *cuboard.Session, verbose bool) (string, error) {
	var typed strings.Builder
	for _, d := range decoded {
		if verbose {
			printDecoded(d)
		}
		if d.Message == nil {
			continue
		}
		ev, err := s.Handle(d.Message)
		if err != nil {
			return "", err
		}
		if ev.Kind == cuboard.EventFinish {
			typed.WriteString(ev.Text)
		}
	}
	typed.WriteString(s.Text())
	return typed.String(), nil
}

func printDecoded(d capture.Decoded) {
	prefix := fmt.Sprintf("%5d %8dms %-6s", d.Frame.Seq, d.Frame.TsMs, d.Frame.Source)
	switch {
	case d.Frame.Source == capture.SourceWrite:
		fmt.Printf("%s % x\n", prefix, d.Frame.Raw)
	case d.Err != nil:
		fmt.Printf("%s %s\n", prefix, errorStyle.Render(d.Err.Error()))
	default:
		line, err := protocol.Describe(d.Message)
		if err != nil {
			line = []byte(err.Error())
		}
		fmt.Printf("%s %s\n", prefix, line)
	}
}
