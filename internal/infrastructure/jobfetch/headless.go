package jobfetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

func (f *PageFetcher) fetchHeadless(ctx context.Context, pageURL string) (Posting, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, f.timeout)
	defer reqCancel()

	var title, body string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Title(&title),
		chromedp.EvaluateAsDevTools(`(() => {
			document.querySelectorAll('script, style, noscript, nav, footer').forEach(n => n.remove());
			return document.body ? document.body.innerText : '';
		})()`, &body),
	)
	if err != nil {
		return Posting{}, err
	}

	return Posting{
		URL:         pageURL,
		Title:       collapseText(title),
		Description: collapseText(body),
		Rendered:    true,
	}, nil
}
