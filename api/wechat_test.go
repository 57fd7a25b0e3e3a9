package api

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"wechat-ai-bot/config"
	"wechat-ai-bot/database"
	"wechat-ai-bot/models"
	"wechat-ai-bot/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

// fakeAI 测试用AI桩
type fakeAI struct {
	textResp  string
	imageResp string
}

func (f *fakeAI) TextCompletion(_ context.Context, _ string) string  { return f.textResp }
func (f *fakeAI) ImageGeneration(_ context.Context, _ string) string { return f.imageResp }

func wechatTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Wechat: config.WechatConfig{Token: "test-token"},
		Quota:  config.QuotaConfig{TextLimit: 10, ImageLimit: 5},
	}
}

func newWechatRouter(cfg *config.Config, ai service.AIClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	chat := service.NewChatService(cfg, ai)
	h := NewWechatHandler(cfg, chat)
	r := gin.New()
	r.GET("/wx", h.Verify)
	r.POST("/wx", h.Receive)
	return r
}

func signOf(token, timestamp, nonce string) string {
	parts := []string{token, timestamp, nonce}
	sort.Strings(parts)
	sum := sha1.Sum([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:])
}

func TestWechatVerify(t *testing.T) {
	cfg := wechatTestConfig()
	router := newWechatRouter(cfg, &fakeAI{})

	sig := signOf("test-token", "1409735669", "1372623149")

	// 签名正确：原样返回 echostr
	req := httptest.NewRequest("GET",
		"/wx?signature="+sig+"&timestamp=1409735669&nonce=1372623149&echostr=hello-wechat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "hello-wechat", w.Body.String())

	// 签名错误：固定失败串
	req2 := httptest.NewRequest("GET",
		"/wx?signature=bad&timestamp=1409735669&nonce=1372623149&echostr=hello-wechat", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)
	assert.Equal(t, 200, w2.Code)
	assert.Equal(t, "Invalid signature", w2.Body.String())
}

func TestWechatReceiveAnsweredText(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `messages`").
		WithArgs("oUser_openid", "你好").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "from_user", "request", "response", "ai_type", "status", "created_at", "updated_at"}).
			AddRow(1, "oUser_openid", "你好", "早上好", models.AITypeText, models.StatusAnswered, now, now))

	router := newWechatRouter(wechatTestConfig(), &fakeAI{})

	body := `<xml>
  <ToUserName><![CDATA[gh_bot]]></ToUserName>
  <FromUserName><![CDATA[oUser_openid]]></FromUserName>
  <MsgType><![CDATA[text]]></MsgType>
  <Content><![CDATA[你好]]></Content>
</xml>`
	req := httptest.NewRequest("POST", "/wx", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/xml")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)

	// 回复方向互换，内容带AI标记前缀
	reply, err := service.DecodeMessage(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "oUser_openid", reply.ToUserName)
	assert.Equal(t, "gh_bot", reply.FromUserName)
	assert.Equal(t, service.MsgTypeText, reply.MsgType)
	assert.Equal(t, "[GPT]: 早上好", reply.Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWechatReceiveUnsupportedType(t *testing.T) {
	// 非文本消息：固定提示，不碰数据库
	router := newWechatRouter(wechatTestConfig(), &fakeAI{})

	body := `<xml>
  <ToUserName><![CDATA[gh_bot]]></ToUserName>
  <FromUserName><![CDATA[oUser_openid]]></FromUserName>
  <MsgType><![CDATA[image]]></MsgType>
  <PicUrl><![CDATA[http://example.com/p.jpg]]></PicUrl>
</xml>`
	req := httptest.NewRequest("POST", "/wx", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	reply, err := service.DecodeMessage(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, service.UnsupportedMessage, reply.Content)
}

func TestWechatReceiveInvalidBody(t *testing.T) {
	router := newWechatRouter(wechatTestConfig(), &fakeAI{})

	req := httptest.NewRequest("POST", "/wx", bytes.NewBufferString("not xml at all"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 信封不可解析时按微信约定回 success
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "success", w.Body.String())
}
