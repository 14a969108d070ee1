package config

import (
	"flag"
	"io"
)

// Options are the command line settings of a run.
type Options struct {
	Track     string
	Pick      bool
	StatePath string
	Autoplay  bool
	Loop      bool
	Overlay   bool
}

// Parse reads options from args (without the program name). defaultState is
// used when -state is not given.
func Parse(args []string, defaultState string, output io.Writer) (Options, error) {
	var o Options
	fs := flag.NewFlagSet("petal-overlay", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&o.Track, "track", "", "audio file to play (.wav, .mp3, .flac)")
	fs.BoolVar(&o.Pick, "pick", false, "choose the audio file with a dialog")
	fs.StringVar(&o.StatePath, "state", defaultState, "playback state file; empty keeps state in memory")
	fs.BoolVar(&o.Autoplay, "autoplay", false, "allow resuming playback without a key press or click")
	fs.BoolVar(&o.Loop, "loop", true, "loop the track")
	fs.BoolVar(&o.Overlay, "overlay", false, "transparent always-on-top window")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if o.Track == "" && fs.NArg() > 0 {
		o.Track = fs.Arg(0)
	}
	return o, nil
}
