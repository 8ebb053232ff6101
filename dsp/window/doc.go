// Package window generates cosine-sum analysis windows for FFT framing.
package window
