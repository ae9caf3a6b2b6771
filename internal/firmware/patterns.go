package firmware

import (
	"fmt"
	"regexp"
	"sync"
)

// Имена шаблонов в реестре.
const (
	PatternDellVersion    = "dell.version"
	PatternHPVersion      = "hp.version"
	PatternHPSortFragment = "hp.sort_fragment"
	PatternOracleVersion  = "oracle.version"
)

var patternSources = map[string]string{
	PatternDellVersion:    `Version (\d+\.\d+(\.\d+)?)`,
	PatternHPVersion:      `\d+\.\d+`,
	PatternHPSortFragment: `^(t=DriversandSoftware&sort=relevancy&layout=table&numberOfResults=25&f)(.*)$`,
	PatternOracleVersion:  `^Sun System Firmware (\d+\.\d+\.\d+(\.[a-z])?)`,
}

var (
	patternsOnce sync.Once
	patterns     map[string]*regexp.Regexp
)

// Pattern возвращает скомпилированный шаблон по имени.
// Все шаблоны компилируются один раз при первом обращении.
func Pattern(name string) *regexp.Regexp {
	patternsOnce.Do(func() {
		patterns = make(map[string]*regexp.Regexp, len(patternSources))
		for n, src := range patternSources {
			patterns[n] = regexp.MustCompile(src)
		}
	})

	re, ok := patterns[name]
	if !ok {
		panic(fmt.Sprintf("firmware: неизвестный шаблон %q", name))
	}
	return re
}
