/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package viper wraps spf13/viper with the typed getters and file-watch wiring
// that the cobra and config packages expect from an application's configuration
// source.
package viper

import (
	"time"

	spfvpr "github.com/spf13/viper"
)

// Viper is the configuration facade passed around the cobra and config packages.
// It is a thin, typed wrapper around a single *spfvpr.Viper instance.
type Viper interface {
	// Viper returns the underlying spf13/viper instance for callers that need
	// functionality this interface does not expose.
	Viper() *spfvpr.Viper

	SetConfigFile(path string)
	SetConfigType(typ string)
	AddConfigPath(path string)

	ReadInConfig() error

	// WatchConfig starts watching the config file for changes, invoking fct on
	// every write. A no-op if no config file has been read yet.
	WatchConfig(fct func())

	IsSet(key string) bool
	AllKeys() []string

	Get(key string) interface{}
	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
	GetFloat64(key string) float64
	GetDuration(key string) time.Duration
	GetTime(key string) time.Time
	GetIntSlice(key string) []int
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	GetStringMapString(key string) map[string]string
	GetStringMapStringSlice(key string) map[string][]string

	Set(key string, value interface{})
	SetDefault(key string, value interface{})

	Unmarshal(rawVal interface{}) error
	UnmarshalKey(key string, rawVal interface{}) error
}

// New returns a Viper wrapping a freshly allocated spf13/viper instance.
func New() Viper {
	return &viper{v: spfvpr.New()}
}
