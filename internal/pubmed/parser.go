package pubmed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"radtools/internal/fileutil"
)

// continuation marks which multi-line field, if any, is currently being
// collected.
type continuation int

const (
	contNone continuation = iota
	contAbstract
	contAddress
)

// articleFields maps article-level tags to their accumulator field.
var articleFields = map[string]func(*Article, string){
	"TI": func(a *Article, v string) { a.Title = v },
	"TA": func(a *Article, v string) { a.JournalAbbrev = v },
	"JT": func(a *Article, v string) { a.Journal = v },
	"VI": func(a *Article, v string) { a.Volume = v },
	"IP": func(a *Article, v string) { a.Issue = v },
	"DP": func(a *Article, v string) { a.Date = v },
	"SO": func(a *Article, v string) { a.Source = v },
	"AB": func(a *Article, v string) { a.Abstract = v },
}

// parser accumulates one article and one author at a time while streaming
// tagged lines.
type parser struct {
	tables  Tables
	article *Article
	author  *Author
	cont    continuation
	log     logrus.FieldLogger
}

// Parse reads an NLM tagged export: a 4-character left-aligned tag, a
// separator column, then the value; continuation lines leave the tag field
// blank. It produces the three linked record tables.
func Parse(r io.Reader, log logrus.FieldLogger) (Tables, error) {
	if log == nil {
		nop := logrus.New()
		nop.SetOutput(io.Discard)
		log = nop
	}
	p := &parser{log: log}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Tables{}, fmt.Errorf("could not read export: %w", err)
	}

	// End of input closes any open accumulators.
	p.flushAuthor()
	p.flushArticle()
	return p.tables, nil
}

// ParseFile parses the export at path.
func ParseFile(path string, log logrus.FieldLogger) (Tables, error) {
	handle, err := fileutil.Stat(path)
	if err != nil {
		return Tables{}, err
	}

	file, err := os.Open(handle.Path)
	if err != nil {
		return Tables{}, fmt.Errorf("could not open export: %w", err)
	}
	defer file.Close()

	return Parse(file, log)
}

func (p *parser) line(line string) {
	var rawTag, value string
	if len(line) >= 5 {
		rawTag = strings.TrimSpace(line[:4])
		value = strings.TrimSpace(line[5:])
	} else {
		rawTag = strings.TrimSpace(line)
	}

	switch {
	case rawTag == "PMID":
		p.flushAuthor()
		p.flushArticle()
		p.article = &Article{PMID: value}
		p.cont = contNone

	case articleFields[rawTag] != nil:
		if p.article == nil {
			p.log.WithField("tag", rawTag).Warn("field before first PMID, ignored")
			p.cont = contNone
			return
		}
		articleFields[rawTag](p.article, Clean(value))
		if rawTag == "AB" {
			p.cont = contAbstract
		} else {
			p.cont = contNone
		}

	case rawTag == "FAU":
		p.flushAuthor()
		p.cont = contNone
		if p.article == nil {
			p.log.Warn("author before first PMID, ignored")
			return
		}
		p.author = &Author{
			PMID:      p.article.PMID,
			ShortName: shortName(value),
			FullName:  value,
		}

	case rawTag == "AD":
		if p.author == nil {
			p.cont = contNone
			return
		}
		p.author.Address = Clean(value)
		p.cont = contAddress

	case rawTag == "MH":
		p.cont = contNone
		if p.article == nil {
			p.log.Warn("keyword before first PMID, ignored")
			return
		}
		p.tables.Keywords = append(p.tables.Keywords, Keyword{
			PMID: p.article.PMID,
			Term: Clean(value),
		})

	case rawTag == "":
		// Continuation line: extend the open multi-line field.
		if value == "" {
			return
		}
		switch p.cont {
		case contAbstract:
			p.article.Abstract += Clean(value)
		case contAddress:
			p.author.Address += Clean(value)
		}

	default:
		// Any other tag closes continuation collection.
		p.cont = contNone
	}
}

// shortName derives the normalized short author name: the substring before
// the first comma of the full name, lower-cased with spaces replaced by
// underscores.
func shortName(fullName string) string {
	if idx := strings.Index(fullName, ","); idx >= 0 {
		fullName = fullName[:idx]
	}
	return CleanUnderscore(fullName)
}

// flushArticle commits the open article accumulator, if any.
func (p *parser) flushArticle() {
	if p.article == nil {
		return
	}
	p.tables.Articles = append(p.tables.Articles, *p.article)
	p.article = nil
}

// flushAuthor commits the open author accumulator, if any. An author with
// no fields beyond its name is still flushed.
func (p *parser) flushAuthor() {
	if p.author == nil {
		return
	}
	p.tables.Authors = append(p.tables.Authors, *p.author)
	p.author = nil
}
