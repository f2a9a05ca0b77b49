package feeds

// categoryOrder 固定分类顺序，多分类搜索与对外展示均按此顺序
var categoryOrder = []string{"general", "technology", "crypto", "finance", "ai"}

// Catalog 静态的分类 → RSS 源映射，进程启动后只读
var Catalog = map[string][]string{
	"technology": {
		"https://techcrunch.com/feed/",
		"https://www.theverge.com/rss/index.xml",
		"https://www.wired.com/feed/rss",
		"https://arstechnica.com/feed/",
		"https://www.engadget.com/rss.xml",
		"https://www.zdnet.com/news/rss.xml",
		"https://www.techmeme.com/feed.xml",
	},
	"crypto": {
		"https://cointelegraph.com/rss",
		"https://cryptopotato.com/feed/",
		"https://u.today/rss.php",
		"https://decrypt.co/feed",
		"https://beincrypto.com/feed/",
		"https://cryptoslate.com/feed/",
		"https://cryptonews.com/news/feed/",
		"https://cryptobriefing.com/feed/",
		"https://ambcrypto.com/feed/",
		"https://www.coinbureau.com/feed/",
		"https://cryptodaily.co.uk/feed",
		"https://www.forbes.com/crypto-blockchain/feed/",
		"https://cointelegraph.com/rss/tag/bitcoin",
		"https://cointelegraph.com/rss/tag/ethereum",
	},
	"finance": {
		"https://finance.yahoo.com/news/rssindex",
		"https://www.cnbc.com/id/100003114/device/rss/rss.html",
		"https://feeds.bloomberg.com/markets/news.rss",
		"https://www.marketwatch.com/rss/",
		"https://www.investing.com/rss/news.rss",
	},
	"ai": {
		"https://www.artificialintelligence-news.com/feed/",
		"https://techcrunch.com/category/artificial-intelligence/feed/",
		"https://www.theverge.com/rss/index.xml",
		"https://www.wired.com/feed/tag/ai/latest/rss",
		"https://venturebeat.com/feed/",
		"https://www.marktechpost.com/feed/",
		"https://analyticsindiamag.com/feed/",
		"https://www.unite.ai/feed/",
		"https://www.technologyreview.com/feed/",
		"https://www.zdnet.com/topic/artificial-intelligence/rss.xml",
		"https://arstechnica.com/tag/artificial-intelligence/feed/",
	},
	"general": {
		"https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml",
		"https://feeds.bbci.co.uk/news/rss.xml",
		"https://www.theguardian.com/world/rss",
		"https://www.aljazeera.com/xml/rss/all.xml",
	},
}

// Categories 返回固定顺序的分类列表
func Categories() []string {
	return append([]string(nil), categoryOrder...)
}
