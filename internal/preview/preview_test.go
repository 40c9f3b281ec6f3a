package preview

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestProducesOneResponsePerTicket(t *testing.T) {
	r := New(zerolog.Nop(), 16)
	defer r.Shutdown()

	r.Request(Ticket{Seq: 1, Key: "x", Title: "x", Command: "printf 'P: x'"})

	select {
	case resp := <-r.Responses():
		assert.Equal(t, uint64(1), resp.Seq)
		assert.Contains(t, resp.Preview.Content, "P: x")
	case <-time.After(2 * time.Second):
		t.Fatal("no response received")
	}
}

func TestBurstCoalescesToLatestTicket(t *testing.T) {
	r := New(zerolog.Nop(), 16)
	defer r.Shutdown()

	for i := uint64(1); i <= 5; i++ {
		r.Request(Ticket{Seq: i, Key: "k", Title: "k", Command: "printf 'v'"})
	}

	var last Response
	timeout := time.After(2 * time.Second)
	for {
		select {
		case resp := <-r.Responses():
			last = resp
			goto done
		case <-timeout:
			t.Fatal("no response received")
		}
	}
done:
	assert.Equal(t, uint64(5), last.Seq)
}

func TestEmptyCommandProducesEmptyKind(t *testing.T) {
	r := New(zerolog.Nop(), 16)
	defer r.Shutdown()

	r.Request(Ticket{Seq: 1, Key: "e", Title: "e", Command: "true"})
	select {
	case resp := <-r.Responses():
		assert.Equal(t, KindEmpty, resp.Preview.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no response received")
	}
}

func TestSlowCommandDoesNotBlockASupersedingTicket(t *testing.T) {
	r := New(zerolog.Nop(), 16)
	defer r.Shutdown()

	r.Request(Ticket{Seq: 1, Key: "slow", Title: "slow", Command: "sleep 30"})
	time.Sleep(50 * time.Millisecond) // let the actor pick up and start the slow ticket
	r.Request(Ticket{Seq: 2, Key: "fast", Title: "fast", Command: "printf 'P: fast'"})

	select {
	case resp := <-r.Responses():
		assert.Equal(t, uint64(2), resp.Seq)
		assert.Contains(t, resp.Preview.Content, "P: fast")
	case <-time.After(3 * time.Second):
		t.Fatal("superseding ticket blocked behind the slow command")
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c := newLRU(2)
	c.put("a", Preview{Title: "a"})
	c.put("b", Preview{Title: "b"})
	c.put("c", Preview{Title: "c"})

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("b")
	require.True(t, ok)
	_, ok = c.get("c")
	require.True(t, ok)
}
