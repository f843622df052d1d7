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

// Package version carries the build-time metadata (package name, release tag,
// commit hash, author, license) that the cobra package stamps onto a CLI's
// --version output and startup banner.
package version

// License identifies the license a binary is distributed under.
type License uint8

const (
	License_Unknown License = iota
	License_MIT
	License_Apache2
	License_GPL3
	License_BSD3
)

// String renders the license as the short name used in --version output.
func (l License) String() string {
	switch l {
	case License_MIT:
		return "MIT"
	case License_Apache2:
		return "Apache-2.0"
	case License_GPL3:
		return "GPL-3.0"
	case License_BSD3:
		return "BSD-3-Clause"
	}
	return "Unknown"
}

// Version is the immutable build metadata of a binary, set once at build time
// (typically via -ldflags) and surfaced through the cobra package's --version flag.
type Version interface {
	GetPackage() string
	GetDescription() string
	GetDate() string
	GetBuild() string
	GetRelease() string
	GetAuthor() string
	GetAppId() string
	GetLicenseName() string
	GetRootPackagePath() string
	GetInfo() interface{}
	GetBuildNumber() int

	// GetHeader renders the multi-line banner the cobra package prints on startup
	// unless ForceNoInfo has been set.
	GetHeader() string
}

// NewVersion builds an immutable Version from build-time metadata. info carries
// any application-chosen free-form payload; buildNum is a monotonic build counter,
// typically the CI run number.
func NewVersion(license License, pkg, description, date, build, release, author, appID string, info interface{}, buildNum int) Version {
	return &version{
		license:     license,
		pkg:         pkg,
		description: description,
		date:        date,
		build:       build,
		release:     release,
		author:      author,
		appID:       appID,
		info:        info,
		buildNum:    buildNum,
	}
}
