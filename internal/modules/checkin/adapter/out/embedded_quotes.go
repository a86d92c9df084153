package out

import (
	"context"
	"math/rand"
	"sync"
	"time"

	checkinout "examprep/internal/modules/checkin/port/out"
)

var defaultQuotes = []string{
	"超声探头是你延伸的手指，每一个切面都是通向真相的窗口。",
	"只有看过足够多的正常图像，才能一眼识别异常。加油，罗丹医生！",
	"多普勒效应不仅仅是物理公式，更是血流的语言。",
	"每天三小时，不仅仅是复习，更是对医学的敬畏。",
	"主治之路虽难，但你已经走在路上。坚持就是胜利！",
	"肝胆胰脾肾，每一个回声都藏着病理的秘密。",
	"心脏的每一次搏动，都在为你今天的努力喝彩。",
	"错题本是你最好的老师，消灭盲点，无往不胜。",
	"沉下心来，分辨力决定了你能看多远，毅力决定了你能走多远。",
	"4月11日是你加冕的日子，现在的汗水都是那天的勋章。",
	"不要被伪像迷惑双眼，要透过现象看本质。",
	"每一个复杂的先天性心脏病，拆解开来都是基础切面的组合。",
	"今天的努力，是为了在考场上看到题目时那一刻的自信。",
	"妇产科的每一个数据，都关乎生命的重量，背下来！",
	"浅表器官虽小，却往往是考分的分水岭，不可大意。",
	"调整好仪器的参数，也调整好自己的心态。",
	"星光不问赶路人，时光不负有心人。超声主治必过！",
	"把书读薄，再把书读厚。现在的你正在质变。",
	"耐得住寂寞，才守得住繁华。备考是孤独的，但结果是甜的。",
	"再坚持一下，你比你自己想象的更强大。",
}

// DefaultQuotes returns a copy of the built-in pool.
func DefaultQuotes() []string {
	return append([]string(nil), defaultQuotes...)
}

// EmbeddedQuotes picks uniformly from a fixed pool.
type EmbeddedQuotes struct {
	mu   sync.Mutex
	pool []string
	rng  *rand.Rand
}

// NewEmbeddedQuotes uses the built-in pool when pool is empty and a
// time-seeded generator when rng is nil.
func NewEmbeddedQuotes(pool []string, rng *rand.Rand) *EmbeddedQuotes {
	if len(pool) == 0 {
		pool = DefaultQuotes()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &EmbeddedQuotes{pool: pool, rng: rng}
}

var _ checkinout.QuoteSource = (*EmbeddedQuotes)(nil)

func (q *EmbeddedQuotes) Next(_ context.Context) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pool[q.rng.Intn(len(q.pool))]
}
