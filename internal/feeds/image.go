package feeds

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// imageURL 按优先级猜测文章配图：
// media:content → media:thumbnail → 图片类型 enclosure → 正文里第一个 <img>。
// 各家源填充的元数据差别很大，顺序不能乱
func imageURL(item *gofeed.Item) string {
	if u := mediaAttr(item, "content"); u != "" {
		return u
	}
	if u := mediaAttr(item, "thumbnail"); u != "" {
		return u
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return firstImageSrc(item)
}

func mediaAttr(item *gofeed.Item, name string) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[name] {
		if u := ext.Attrs["url"]; u != "" {
			return u
		}
	}
	return ""
}

func firstImageSrc(item *gofeed.Item) string {
	html := item.Content
	if html == "" {
		html = item.Description
	}
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}
