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

// Package version describes the build/release metadata the CLI prints on
// --version and at startup: package name, release, build, license.
package version

import "time"

// License identifies the license a binary ships under. Each constant below
// has its own name and short boilerplate text; any other value resolves to
// "Unknown License" for both.
type License uint8

const (
	License_MIT License = iota + 1
	License_Apache_v2
	License_GNU_GPL_v3
)

// Version exposes build and release metadata for CLI --version output.
type Version interface {
	GetPackage() string
	GetDescription() string
	GetBuild() string
	GetRelease() string
	GetAuthor() string
	GetPrefix() string
	GetDate() string
	GetTime() time.Time
	GetAppId() string
	GetHeader() string
	GetInfo() string
	GetRootPackagePath() string
	GetLicenseName() string
	GetLicenseBoiler(extra ...License) string

	PrintInfo()
	PrintLicense(extra ...License)
}

// NewVersion builds a Version. date is parsed as RFC3339 and falls back to
// time.Now() when it doesn't parse. numSubPackage trims that many trailing
// path segments off the reflection-derived root package path (0 keeps the
// full path of model's package).
func NewVersion(lic License, pkg, desc, date, build, release, author, prefix string, model interface{}, numSubPackage int) Version {
	return newVersion(lic, pkg, desc, date, build, release, author, prefix, model, numSubPackage)
}
