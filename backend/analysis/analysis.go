package analysis

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	beepmp3 "github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	mp3frames "github.com/tcolgate/mp3"
)

// AudioProperties are probed straight from the audio frames, independent of
// any tag block the file may carry.
type AudioProperties struct {
	Duration   float64 `json:"duration"`
	Bitrate    int     `json:"bitrate"`
	SampleRate int     `json:"sampleRate"`
}

// Probe inspects the audio stream of the file at path. Formats without a
// usable decoder (m4a) yield zero properties and no error.
func Probe(path string) (AudioProperties, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".mp3"):
		return mp3Props(path)
	case strings.HasSuffix(lower, ".wav"):
		return decodeProps(path, func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(r)
		})
	case strings.HasSuffix(lower, ".ogg"):
		return decodeProps(path, func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return vorbis.Decode(r)
		})
	case strings.HasSuffix(lower, ".flac"):
		return decodeProps(path, func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return flac.Decode(r)
		})
	default:
		return AudioProperties{}, nil
	}
}

func mp3Props(path string) (AudioProperties, error) {
	f, err := os.Open(path)
	if err != nil {
		return AudioProperties{}, err
	}
	defer f.Close()

	d := mp3frames.NewDecoder(f)
	var frame mp3frames.Frame
	var skipped int
	var (
		bestBitrate int
		sampleRate  int
		totalDur    time.Duration
	)

	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			continue
		}

		header := frame.Header()
		if sr := int(header.SampleRate()); sr > 0 && sampleRate == 0 {
			sampleRate = sr
		}
		if header.BitRate() > 0 {
			if br := int(header.BitRate()) / 1000; br > bestBitrate {
				bestBitrate = br
			}
		}
		totalDur += frame.Duration()
	}

	if totalDur > 0 {
		props := AudioProperties{
			Duration:   totalDur.Seconds(),
			Bitrate:    bestBitrate,
			SampleRate: sampleRate,
		}
		if props.Bitrate == 0 {
			if fi, err := os.Stat(path); err == nil {
				props.Bitrate = int((float64(fi.Size()*8) / totalDur.Seconds()) / 1000)
			}
		}
		return props, nil
	}

	if props, err := decodeProps(path, beepmp3.Decode); err == nil {
		if props.SampleRate == 0 {
			props.SampleRate = sampleRate
		}
		return props, nil
	}

	return AudioProperties{SampleRate: sampleRate}, nil
}

func decodeProps(path string, decoder func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)) (AudioProperties, error) {
	f, err := os.Open(path)
	if err != nil {
		return AudioProperties{}, err
	}
	defer f.Close()

	streamer, format, err := decoder(f)
	if err != nil {
		return AudioProperties{}, err
	}
	defer streamer.Close()

	samples := streamer.Len()
	if samples <= 0 || format.SampleRate <= 0 {
		return AudioProperties{}, nil
	}

	duration := float64(samples) / float64(format.SampleRate)
	props := AudioProperties{
		Duration:   duration,
		SampleRate: int(format.SampleRate),
	}

	if fi, err := os.Stat(path); err == nil && duration > 0 {
		props.Bitrate = int((float64(fi.Size()*8) / duration) / 1000)
	}
	return props, nil
}
