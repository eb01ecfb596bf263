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

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

type version struct {
	lic     License
	pkg     string
	desc    string
	date    time.Time
	build   string
	release string
	author  string
	prefix  string
	path    string
}

func newVersion(lic License, pkg, desc, date, build, release, author, prefix string, model interface{}, numSubPackage int) *version {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		t = time.Now()
	}

	path := reflect.TypeOf(model).PkgPath()
	root := path

	for i := 0; i < numSubPackage; i++ {
		if idx := strings.LastIndex(root, "/"); idx >= 0 {
			root = root[:idx]
		}
	}

	if pkg == "" || strings.EqualFold(pkg, "noname") {
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			pkg = path[idx+1:]
		} else {
			pkg = path
		}
	}

	return &version{
		lic:     lic,
		pkg:     pkg,
		desc:    desc,
		date:    t,
		build:   build,
		release: release,
		author:  author,
		prefix:  strings.ToUpper(prefix),
		path:    root,
	}
}

func (v *version) GetPackage() string     { return v.pkg }
func (v *version) GetDescription() string { return v.desc }
func (v *version) GetBuild() string       { return v.build }
func (v *version) GetRelease() string     { return v.release }
func (v *version) GetPrefix() string      { return v.prefix }
func (v *version) GetDate() string        { return v.date.Format(time.RFC1123) }
func (v *version) GetTime() time.Time     { return v.date }
func (v *version) GetRootPackagePath() string { return v.path }

func (v *version) GetAuthor() string {
	return fmt.Sprintf("%s (source: %s)", v.author, v.path)
}

func (v *version) GetAppId() string {
	return fmt.Sprintf("%s-%s-%s (Runtime %s)", v.release, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func (v *version) GetHeader() string {
	return fmt.Sprintf("%s %s (build %s)", v.pkg, v.release, v.build)
}

func (v *version) GetInfo() string {
	return fmt.Sprintf("Release: %s\nBuild: %s\nDate: %s\nLicense: %s", v.release, v.build, v.GetDate(), v.GetLicenseName())
}

func (v *version) GetLicenseName() string {
	return licenseName(v.lic)
}

func (v *version) GetLicenseBoiler(extra ...License) string {
	sb := strings.Builder{}
	sb.WriteString(licenseBoiler(v.lic))

	for _, e := range extra {
		sb.WriteString("\n\n")
		sb.WriteString(licenseBoiler(e))
	}

	return sb.String()
}

func (v *version) PrintInfo() {
	println(v.GetHeader())
}

func (v *version) PrintLicense(extra ...License) {
	println(v.GetLicenseBoiler(extra...))
}

func licenseName(l License) string {
	switch l {
	case License_MIT:
		return "MIT License"
	case License_Apache_v2:
		return "Apache License 2.0"
	case License_GNU_GPL_v3:
		return "GNU GENERAL PUBLIC LICENSE v3"
	}
	return "Unknown License"
}

func licenseBoiler(l License) string {
	switch l {
	case License_MIT:
		return "MIT License\n\nPermission is hereby granted, free of charge, to any person obtaining a copy of this software and associated documentation files, to deal in the Software without restriction."
	case License_Apache_v2:
		return "Apache License\nVersion 2.0, January 2004\n\nLicensed under the Apache License, Version 2.0."
	case License_GNU_GPL_v3:
		return "GNU GENERAL PUBLIC LICENSE\nVersion 3, 29 June 2007\n\nThis program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License."
	}
	return "Unknown License"
}
