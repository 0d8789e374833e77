package cache

import (
	"fmt"
	"time"
)

const (
	ChannelProfileKeyPrefix  = "channel:%s"
	SubscriberCountKeyPrefix = "channel:%d:subscribers"
)

const (
	ChannelProfileTTL  = 2 * time.Minute
	SubscriberCountTTL = 5 * time.Minute
)

func ChannelProfileKey(username string) string {
	return fmt.Sprintf(ChannelProfileKeyPrefix, username)
}

func SubscriberCountKey(channelID uint) string {
	return fmt.Sprintf(SubscriberCountKeyPrefix, channelID)
}
