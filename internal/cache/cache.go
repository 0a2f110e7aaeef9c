package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
)

// Cache remembers which topics were already handled in a run and the
// articles produced for them. Topics are compared case-insensitively with
// surrounding whitespace ignored.
type Cache struct {
	mu        sync.RWMutex
	articles  map[string]models.Article
	processed map[string]time.Time
}

func New() *Cache {
	return &Cache{
		articles:  make(map[string]models.Article),
		processed: make(map[string]time.Time),
	}
}

// Key normalises a topic into its cache key.
func Key(topic models.Topic) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(string(topic)), " "))
	hash := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hash)
}

// MarkProcessed records that topic was attempted, whatever the outcome.
// It reports false if the topic had already been marked.
func (c *Cache) MarkProcessed(topic models.Topic) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(topic)
	if _, seen := c.processed[key]; seen {
		return false
	}
	c.processed[key] = time.Now()
	return true
}

func (c *Cache) IsProcessed(topic models.Topic) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, seen := c.processed[Key(topic)]
	return seen
}

func (c *Cache) AddArticle(article models.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(article.Topic)
	c.articles[key] = article
	if _, seen := c.processed[key]; !seen {
		c.processed[key] = time.Now()
	}
}

func (c *Cache) GetArticle(topic models.Topic) (models.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	article, exists := c.articles[Key(topic)]
	return article, exists
}

func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"processed": len(c.processed),
		"articles":  len(c.articles),
		"failed":    len(c.processed) - len(c.articles),
	}
}
