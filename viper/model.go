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

package viper

import (
	"time"

	"github.com/fsnotify/fsnotify"
	spfvpr "github.com/spf13/viper"
)

type viper struct {
	v *spfvpr.Viper
}

func (p *viper) Viper() *spfvpr.Viper { return p.v }

func (p *viper) SetConfigFile(path string) { p.v.SetConfigFile(path) }
func (p *viper) SetConfigType(typ string)  { p.v.SetConfigType(typ) }
func (p *viper) AddConfigPath(path string) { p.v.AddConfigPath(path) }

func (p *viper) ReadInConfig() error {
	if err := p.v.ReadInConfig(); err != nil {
		return ErrorReadConfig.Error(err)
	}
	return nil
}

func (p *viper) WatchConfig(fct func()) {
	p.v.OnConfigChange(func(_ fsnotify.Event) {
		if fct != nil {
			fct()
		}
	})
	p.v.WatchConfig()
}

func (p *viper) IsSet(key string) bool { return p.v.IsSet(key) }
func (p *viper) AllKeys() []string     { return p.v.AllKeys() }

func (p *viper) Get(key string) interface{}    { return p.v.Get(key) }
func (p *viper) GetBool(key string) bool       { return p.v.GetBool(key) }
func (p *viper) GetString(key string) string   { return p.v.GetString(key) }
func (p *viper) GetInt(key string) int         { return p.v.GetInt(key) }
func (p *viper) GetInt32(key string) int32     { return p.v.GetInt32(key) }
func (p *viper) GetInt64(key string) int64     { return p.v.GetInt64(key) }
func (p *viper) GetUint(key string) uint       { return p.v.GetUint(key) }
func (p *viper) GetUint16(key string) uint16   { return p.v.GetUint16(key) }
func (p *viper) GetUint32(key string) uint32   { return p.v.GetUint32(key) }
func (p *viper) GetUint64(key string) uint64   { return p.v.GetUint64(key) }
func (p *viper) GetFloat64(key string) float64 { return p.v.GetFloat64(key) }

func (p *viper) GetDuration(key string) time.Duration { return p.v.GetDuration(key) }
func (p *viper) GetTime(key string) time.Time         { return p.v.GetTime(key) }

func (p *viper) GetIntSlice(key string) []int       { return p.v.GetIntSlice(key) }
func (p *viper) GetStringSlice(key string) []string { return p.v.GetStringSlice(key) }

func (p *viper) GetStringMap(key string) map[string]interface{} { return p.v.GetStringMap(key) }
func (p *viper) GetStringMapString(key string) map[string]string {
	return p.v.GetStringMapString(key)
}
func (p *viper) GetStringMapStringSlice(key string) map[string][]string {
	return p.v.GetStringMapStringSlice(key)
}

func (p *viper) Set(key string, value interface{})        { p.v.Set(key, value) }
func (p *viper) SetDefault(key string, value interface{}) { p.v.SetDefault(key, value) }

func (p *viper) Unmarshal(rawVal interface{}) error {
	if err := p.v.Unmarshal(rawVal); err != nil {
		return ErrorUnmarshal.Error(err)
	}
	return nil
}

func (p *viper) UnmarshalKey(key string, rawVal interface{}) error {
	if err := p.v.UnmarshalKey(key, rawVal); err != nil {
		return ErrorUnmarshal.Error(err)
	}
	return nil
}
