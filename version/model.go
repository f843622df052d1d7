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

package version

import "fmt"

type version struct {
	license     License
	pkg         string
	description string
	date        string
	build       string
	release     string
	author      string
	appID       string
	info        interface{}
	buildNum    int
}

func (v *version) GetPackage() string         { return v.pkg }
func (v *version) GetDescription() string     { return v.description }
func (v *version) GetDate() string            { return v.date }
func (v *version) GetBuild() string           { return v.build }
func (v *version) GetRelease() string         { return v.release }
func (v *version) GetAuthor() string          { return v.author }
func (v *version) GetAppId() string           { return v.appID }
func (v *version) GetLicenseName() string     { return v.license.String() }
func (v *version) GetRootPackagePath() string { return v.pkg }
func (v *version) GetInfo() interface{}       { return v.info }
func (v *version) GetBuildNumber() int        { return v.buildNum }

func (v *version) GetHeader() string {
	return fmt.Sprintf("%s %s (build %s, %s) - %s\nLicense: %s - Author: %s\n",
		v.pkg, v.release, v.build, v.date, v.description, v.license.String(), v.author)
}
