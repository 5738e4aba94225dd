package backup_vault

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	awscdklambdagoalpha "github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type BackupVaultStackProps struct {
	awscdk.StackProps
	VaultName         *string
	RoleArn           *string
	NotificationEmail *string
	LogLevel          *string
}

func NewBackupVaultStack(scope constructs.Construct, id string, props *BackupVaultStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, &id, &sprops)

	account := *stack.Account()
	region := *stack.Region()

	roleArn := fmt.Sprintf("arn:aws:iam::%s:role/service-role/AWSBackupDefaultServiceRole", account)
	if props.RoleArn != nil && *props.RoleArn != "" {
		roleArn = *props.RoleArn
	}

	logLevel := "info"
	if props.LogLevel != nil && *props.LogLevel != "" {
		logLevel = *props.LogLevel
	}

	environment := map[string]*string{
		"VAULT_NAME":      props.VaultName,
		"AWS_ACCOUNT_ID":  jsii.String(account),
		"BACKUP_ROLE_ARN": jsii.String(roleArn),
		"LOG_LEVEL":       jsii.String(logLevel),
	}

	// Optional SNS topic for job notifications
	var topic awssns.Topic
	if props.NotificationEmail != nil && *props.NotificationEmail != "" {
		topic = awssns.NewTopic(stack, jsii.String("BackupVaultJobTopic"), &awssns.TopicProps{
			DisplayName: jsii.String("AWS Backup Job Notifications"),
		})
		awssns.NewSubscription(stack, jsii.String("BackupVaultJobSubscription"), &awssns.SubscriptionProps{
			Protocol: awssns.SubscriptionProtocol_EMAIL,
			Endpoint: props.NotificationEmail,
			Topic:    topic,
		})
		environment["SNS_TOPIC_ARN"] = topic.TopicArn()
	}

	lambdaFn := awscdklambdagoalpha.NewGoFunction(stack, jsii.String("BackupVaultFunction"), &awscdklambdagoalpha.GoFunctionProps{
		Runtime:     awslambda.Runtime_PROVIDED_AL2023(),
		Entry:       jsii.String("lambda"),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(60)),
		Environment: &environment,
	})

	vaultArn := fmt.Sprintf("arn:aws:backup:%s:%s:backup-vault:%s", region, account, *props.VaultName)

	lambdaFn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings(VaultActions...),
		Resources: jsii.Strings(vaultArn),
	}))
	lambdaFn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings(RecoveryPointActions...),
		Resources: jsii.Strings("*"),
	}))
	lambdaFn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("iam:PassRole"),
		Resources: jsii.Strings(roleArn),
	}))
	lambdaFn.Role().AddManagedPolicy(
		awsiam.ManagedPolicy_FromAwsManagedPolicyName(
			jsii.String("service-role/AWSLambdaBasicExecutionRole")))
	if topic != nil {
		topic.GrantPublish(lambdaFn)
	}

	awscdk.NewCfnOutput(stack, jsii.String("BackupVaultFunctionName"), &awscdk.CfnOutputProps{
		Value: lambdaFn.FunctionName(),
	})

	return stack
}
