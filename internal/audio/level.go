package audio

import "math"

// Level summarizes the loudness of a buffer across all channels.
type Level struct {
	Peak float64 // max absolute sample, 0..1
	RMS  float64
}

func Measure(buf *Buffer) Level {
	var peak, sumSquares float64
	var count int

	for c := 0; c < buf.NumberOfChannels(); c++ {
		for _, s := range buf.ChannelData(c) {
			v := math.Abs(float64(s))
			if v > peak {
				peak = v
			}
			sumSquares += float64(s) * float64(s)
			count++
		}
	}

	if count == 0 {
		return Level{}
	}
	return Level{Peak: peak, RMS: math.Sqrt(sumSquares / float64(count))}
}
