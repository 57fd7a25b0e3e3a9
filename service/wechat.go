package service

import (
	"encoding/xml"
	"time"
)

// MsgTypeText 文本消息类型
const MsgTypeText = "text"

// Envelope 微信公众号推送的消息信封，只消费文档化的字段，其余标签与属性忽略。
// 缺失字段解码后为空字符串。
type Envelope struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   string   `xml:"ToUserName"`
	FromUserName string   `xml:"FromUserName"`
	MsgType      string   `xml:"MsgType"`
	Content      string   `xml:"Content"`
}

// cdataText CDATA 包裹的文本节点，保证回复内容中的引号、尖括号等原样透传
type cdataText struct {
	Text string `xml:",cdata"`
}

// replyEnvelope 回复信封，字段名与入站信封一致，外加 CreateTime（毫秒时间戳）
type replyEnvelope struct {
	XMLName      xml.Name  `xml:"xml"`
	ToUserName   cdataText `xml:"ToUserName"`
	FromUserName cdataText `xml:"FromUserName"`
	CreateTime   int64     `xml:"CreateTime"`
	MsgType      cdataText `xml:"MsgType"`
	Content      cdataText `xml:"Content"`
}

// DecodeMessage 解析入站 XML 信封
func DecodeMessage(body []byte) (*Envelope, error) {
	var env Envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// EncodeReply 构造文本回复信封
// toUser/fromUser 由调用方互换（回复方向与入站相反）
func EncodeReply(toUser, fromUser, content string) ([]byte, error) {
	reply := replyEnvelope{
		ToUserName:   cdataText{Text: toUser},
		FromUserName: cdataText{Text: fromUser},
		CreateTime:   time.Now().UnixMilli(),
		MsgType:      cdataText{Text: MsgTypeText},
		Content:      cdataText{Text: content},
	}
	return xml.Marshal(reply)
}
