package agent

import (
	"strings"
	"unicode/utf8"
)

const maxKeywords = 5

// Intent 从自由文本里提取出来的查询描述
type Intent struct {
	Keywords   []string
	Categories []string
	MaxResults int
}

// categoryKeywords 有序表，保证同一输入的分类顺序稳定
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"technology", []string{"tech", "technology", "gadget", "software", "hardware"}},
	{"crypto", []string{"crypto", "bitcoin", "ethereum", "blockchain", "defi", "web3"}},
	{"finance", []string{"finance", "stock", "market", "trading", "investment", "economy"}},
	{"ai", []string{"ai", "artificial intelligence", "machine learning", "llm", "gpt"}},
	{"general", []string{"news", "latest", "today", "recent", "world"}},
}

var stopWords = map[string]struct{}{
	"what":   {},
	"news":   {},
	"about":  {},
	"latest": {},
	"show":   {},
	"find":   {},
	"give":   {},
}

// ExtractIntent 是纯函数：同一输入永远得到同一结果。
// 分类靠关键词子串匹配，没有命中时兜底 general；
// 关键词取长度大于 3 个字符、不在停用词表里的前 5 个词
func ExtractIntent(message string, maxResults int) Intent {
	lower := strings.ToLower(message)

	var categories []string
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				categories = append(categories, entry.category)
				break
			}
		}
	}
	if len(categories) == 0 {
		categories = []string{"general"}
	}

	var keywords []string
	for _, word := range strings.Fields(message) {
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		if _, ok := stopWords[strings.ToLower(word)]; ok {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}

	return Intent{
		Keywords:   keywords,
		Categories: categories,
		MaxResults: maxResults,
	}
}
