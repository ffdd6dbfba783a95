package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/ashwinyue/monster-ai/internal/testutil"
)

func TestGetChatCreatesSession(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	mgr := NewManager(nil)
	ctx := context.Background()

	sess := mgr.GetChat(ctx, "chat-1")
	assert.NotNil(sess)
	assert.Equal("chat-1", sess.ID)
	assert.Equal(0, len(sess.Messages))

	// 再次获取返回同一实例
	assert.Equal(sess, mgr.GetChat(ctx, "chat-1"))
}

func TestSaveChatPersistsChanges(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	mgr := NewManager(nil)
	ctx := context.Background()

	sess := mgr.GetChat(ctx, "chat-1")
	sess.Messages = append(sess.Messages, model.ChatMessage{ID: "msg-1", Role: model.RoleUser, Content: "hi"})
	mgr.SaveChat(ctx, sess)

	got := mgr.GetChat(ctx, "chat-1")
	assert.Equal(1, len(got.Messages))
	assert.Equal("hi", got.Messages[0].Content)
}

func TestChatAndBattleKeyspacesIndependent(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	mgr := NewManager(nil)
	ctx := context.Background()

	chat := mgr.GetChat(ctx, "session-1")
	battle := mgr.GetBattle(ctx, "session-1")

	// 同一 ID 下聊天与战斗互不干扰
	chat.Messages = append(chat.Messages, model.ChatMessage{ID: "msg-1", Role: model.RoleUser, Content: "hi"})
	mgr.SaveChat(ctx, chat)

	assert.Equal(model.BattlePhaseNotStarted, battle.Phase)
	assert.Equal(0, len(mgr.GetBattle(ctx, "session-1").Log))
}

func TestGetBattleCreatesSession(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	mgr := NewManager(nil)
	ctx := context.Background()

	sess := mgr.GetBattle(ctx, "battle-1")
	assert.NotNil(sess)
	assert.Equal("battle-1", sess.ID)
	assert.Equal(model.BattlePhaseNotStarted, sess.Phase)

	assert.Equal(sess, mgr.GetBattle(ctx, "battle-1"))
}

func TestClearRemovesBothSessions(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	mgr := NewManager(nil)
	ctx := context.Background()

	chat := mgr.GetChat(ctx, "session-1")
	chat.Messages = append(chat.Messages, model.ChatMessage{ID: "msg-1", Role: model.RoleUser, Content: "hi"})
	mgr.SaveChat(ctx, chat)
	battle := mgr.GetBattle(ctx, "session-1")
	battle.Phase = model.BattlePhaseActive
	mgr.SaveBattle(ctx, battle)

	mgr.Clear(ctx, "session-1")

	assert.Equal(0, len(mgr.GetChat(ctx, "session-1").Messages))
	assert.Equal(model.BattlePhaseNotStarted, mgr.GetBattle(ctx, "session-1").Phase)
}

func TestConcurrentAccess(t *testing.T) {
	mgr := NewManager(nil)
	ctx := context.Background()

	// 不同会话的并发读写必须安全；同一会话由调用方串行化
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("session-%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			sess := mgr.GetChat(ctx, id)
			mgr.SaveChat(ctx, sess)
		}()
		go func() {
			defer wg.Done()
			sess := mgr.GetBattle(ctx, id)
			mgr.SaveBattle(ctx, sess)
		}()
	}
	wg.Wait()
}
